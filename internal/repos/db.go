package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	// :memory: databases are per-connection
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo contacts if the table is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Admin sessions: one API token per browser sid
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  expires_at TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);

-- Contact form submissions
CREATE TABLE IF NOT EXISTS contacts(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  company TEXT NOT NULL DEFAULT '',
  gst_number TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT 'new' CHECK (type IN ('new','existing')),
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','contacted','completed')),
  password_hash TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(LOWER(email));

-- Passwords issued from the GST generator
CREATE TABLE IF NOT EXISTS generated_credentials(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  gst_number TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_credentials_gst ON generated_credentials(gst_number);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM contacts`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo contacts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO contacts(id,name,email,phone,company,gst_number,message,type,status,created_at) VALUES
	  ('c-rajesh','Rajesh Kumar','rajesh.kumar@example.com','+919876543210','Tech Solutions India','29ABCDE1234F1Z5',
	   'Interested in purchasing 5 Dell workstations for our new office.','new','pending','2023-10-15T14:30:00Z'),
	  ('c-priya','Priya Sharma','priya.sharma@example.com','+918765432109','Delhi University','07ABCDE1234F1Z6',
	   'Need quotation for 10 HP printers for computer lab.','existing','contacted','2023-10-14T11:15:00Z'),
	  ('c-vikram','Vikram Singh','vikram.singh@example.com','+917654321098','Secure Systems Pvt Ltd','09ABCDE1234F1Z7',
	   'Looking for complete CCTV solution for new office building.','new','pending','2023-10-10T09:45:00Z'),
	  ('c-anjali','Anjali Mehta','anjali.mehta@example.com','+916543210987','Bright Future School','24ABCDE1234F1Z8',
	   'Interested in interactive panels for classrooms.','existing','completed','2023-10-08T16:20:00Z')`)
	return tx.Commit()
}
