package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
)

// Stat is one dashboard counter. OK is false when its source failed.
type Stat struct {
	Count int
	OK    bool
}

type Dashboard struct {
	Message      string
	Products     Stat
	Enquiries    Stat
	NewEnquiries Stat
	Contacts     Stat
	Gallery      Stat
}

type DashboardService struct {
	Contacts *ContactService
}

// Load gathers the dashboard counters concurrently. A failing source is
// shown as unavailable; an auth rejection from any source fails the whole
// call with ErrUnauthorized.
func (s *DashboardService) Load(ctx context.Context, api *apiclient.Client) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	soft := func(err error) error {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return err
		}
		return nil
	}

	g.Go(func() error {
		info, err := api.Dashboard(gctx)
		if err == nil {
			d.Message = info.Message
		}
		return soft(err)
	})
	g.Go(func() error {
		ps, err := api.Products(gctx)
		if err == nil {
			d.Products = Stat{Count: len(ps), OK: true}
		}
		return soft(err)
	})
	g.Go(func() error {
		es, err := api.Enquiries(gctx)
		if err == nil {
			n := 0
			for _, e := range es {
				if e.Status == domain.EnquiryNew {
					n++
				}
			}
			d.Enquiries = Stat{Count: len(es), OK: true}
			d.NewEnquiries = Stat{Count: n, OK: true}
		}
		return soft(err)
	})
	g.Go(func() error {
		imgs, err := api.Gallery(gctx)
		if err == nil {
			d.Gallery = Stat{Count: len(imgs), OK: true}
		}
		return soft(err)
	})
	if s.Contacts != nil {
		g.Go(func() error {
			n, err := s.Contacts.Count(gctx)
			if err == nil {
				d.Contacts = Stat{Count: n, OK: true}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
