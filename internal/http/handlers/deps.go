package handlers

import (
	"time"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/forms"
	"nkeinfinity/internal/services"
)

// draftTTL bounds how long an unsaved product form is kept.
const draftTTL = 2 * time.Hour

type Deps struct {
	Sessions *Sessions
	Auth     *services.AuthService

	AuthHandler         *AuthHandler
	CategoryHandler     *CategoryHandler
	ProductHandler      *ProductHandler
	SearchHandler       *SearchHandler
	PagesHandler        *PagesHandler
	AdminHandler        *AdminHandler
	ProductAdminHandler *ProductAdminHandler
	EnquiryHandler      *EnquiryHandler
	ContactHandler      *ContactHandler
	GalleryHandler      *GalleryHandler
}

func NewDeps(api *apiclient.Client, sessions *Sessions, auth *services.AuthService, contacts *services.ContactService) *Deps {
	catalogSvc := services.NewCatalogService(api)
	dashSvc := &services.DashboardService{Contacts: contacts}

	return &Deps{
		Sessions:            sessions,
		Auth:                auth,
		AuthHandler:         &AuthHandler{Auth: auth, Sessions: sessions},
		CategoryHandler:     &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:      &ProductHandler{Catalog: catalogSvc, API: api},
		SearchHandler:       &SearchHandler{Catalog: catalogSvc},
		PagesHandler:        &PagesHandler{Contacts: contacts},
		AdminHandler:        &AdminHandler{API: api, Dashboard: dashSvc},
		ProductAdminHandler: &ProductAdminHandler{API: api, Catalog: catalogSvc, Drafts: forms.NewStore[forms.ProductDraft](draftTTL)},
		EnquiryHandler:      &EnquiryHandler{API: api},
		ContactHandler:      &ContactHandler{Contacts: contacts},
		GalleryHandler:      &GalleryHandler{API: api},
	}
}
