package service

import (
	"context"
	"errors"
	"testing"

	"github.com/uninorte/lead-system/internal/core/domain"
)

func TestCatalogService_CoursesListsActiveOnly(t *testing.T) {
	courses := &stubCourseRepo{courses: []*domain.Course{
		{ID: "1", Name: "Direito", Active: true},
		{ID: "2", Name: "Antigo", Active: false},
	}}
	svc := NewCatalogService(courses, &stubStatusRepo{}, &stubAudit{})

	got, err := svc.Courses(context.Background())
	if err != nil {
		t.Fatalf("courses failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("unexpected courses: %+v", got)
	}
}

func TestCatalogService_CreateCourse(t *testing.T) {
	courses := &stubCourseRepo{}
	rec := &stubAudit{}
	svc := NewCatalogService(courses, &stubStatusRepo{}, rec)

	c, err := svc.CreateCourse(context.Background(), admin, " Medicina ", true)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.ID == "" || c.Name != "Medicina" || !c.Active {
		t.Fatalf("unexpected course: %+v", c)
	}
	if entry, _ := rec.last(); entry.Entity != domain.EntityCourse || entry.EntityID != c.ID {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}

	if _, err := svc.CreateCourse(context.Background(), admin, "  ", true); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateCourse(context.Background(), coordinator, "X", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCatalogService_CreateStatus(t *testing.T) {
	statuses := &stubStatusRepo{}
	svc := NewCatalogService(&stubCourseRepo{}, statuses, &stubAudit{})

	st, err := svc.CreateStatus(context.Background(), admin, "Retornar", " #a1b2c3 ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if st.Color != "#a1b2c3" {
		t.Fatalf("expected colour kept as given, got %q", st.Color)
	}
	if len(statuses.statuses) != 1 {
		t.Fatalf("expected stored status")
	}

	for _, free := range []string{"red", "#A1B2C3FF", "rgb(0,0,0)"} {
		if _, err := svc.CreateStatus(context.Background(), admin, "X", free); err != nil {
			t.Fatalf("colour %q must be accepted: %v", free, err)
		}
	}
	if _, err := svc.CreateStatus(context.Background(), admin, "X", "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank colour: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.CreateStatus(context.Background(), seller, "X", "#fff"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
