package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

const registrationSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Admissions", "version": "1.0.0"},
  "paths": {
    "/registrations": {
      "post": {
        "operationId": "createRegistration",
        "summary": "Student registration",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["full_name", "email"],
                "properties": {
                  "full_name": {"type": "string", "title": "Full Name"},
                  "email": {"type": "string", "format": "email"},
                  "birth_date": {"type": "string", "format": "date"},
                  "age": {"type": "integer"},
                  "bio": {"type": "string", "maxLength": 2000},
                  "track": {"type": "string", "enum": ["regular", "scholarship"]},
                  "interests": {"type": "array", "items": {"type": "string", "enum": ["science", "arts"]}},
                  "boarding": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      },
      "get": {
        "operationId": "listRegistrations",
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func TestOperationsListsJSONBodies(t *testing.T) {
	importer := New()

	ids, err := importer.Operations(context.Background(), []byte(registrationSpec))
	if err != nil {
		t.Fatalf("Operations: %v", err)
	}
	// listRegistrations has no request body and is excluded
	want := []string{"createRegistration"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestImportMapsProperties(t *testing.T) {
	importer := New()

	form, err := importer.Import(context.Background(), []byte(registrationSpec), "createRegistration")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if form.Name != "Student registration" {
		t.Fatalf("form name: %q", form.Name)
	}
	if form.Status != schema.StatusInactive {
		t.Fatalf("imported drafts must start inactive, got %q", form.Status)
	}

	byKey := make(map[string]schema.Field, len(form.Fields))
	for _, field := range form.Fields {
		byKey[field.Key] = field
	}

	checks := []struct {
		key      string
		fType    schema.FieldType
		required bool
	}{
		{"full_name", schema.FieldTypeText, true},
		{"email", schema.FieldTypeEmail, true},
		{"birth_date", schema.FieldTypeDate, false},
		{"age", schema.FieldTypeNumber, false},
		{"bio", schema.FieldTypeTextarea, false},
		{"track", schema.FieldTypeSelect, false},
		{"interests", schema.FieldTypeCheckbox, false},
		{"boarding", schema.FieldTypeRadio, false},
	}
	for _, check := range checks {
		field, ok := byKey[check.key]
		if !ok {
			t.Fatalf("field %q missing: %+v", check.key, form.Fields)
		}
		if field.Type != check.fType {
			t.Fatalf("field %q: expected type %q, got %q", check.key, check.fType, field.Type)
		}
		if field.Required != check.required {
			t.Fatalf("field %q: required=%v", check.key, field.Required)
		}
	}

	if byKey["full_name"].Label != "Full Name" {
		t.Fatalf("title should win as label, got %q", byKey["full_name"].Label)
	}
	if byKey["birth_date"].Label != "Birth Date" {
		t.Fatalf("humanized label expected, got %q", byKey["birth_date"].Label)
	}

	wantOptions := []schema.Option{
		{Label: "Regular", Value: "regular"},
		{Label: "Scholarship", Value: "scholarship"},
	}
	if diff := cmp.Diff(wantOptions, byKey["track"].Options); diff != "" {
		t.Fatalf("enum options mismatch (-want +got):\n%s", diff)
	}
	if len(byKey["interests"].Options) != 2 {
		t.Fatalf("array enum options missing: %+v", byKey["interests"].Options)
	}
}

func TestImportUnknownOperation(t *testing.T) {
	importer := New()

	_, err := importer.Import(context.Background(), []byte(registrationSpec), "nope")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestImportRejectsEmptyDocument(t *testing.T) {
	importer := New()

	if _, err := importer.Operations(context.Background(), nil); err == nil {
		t.Fatalf("empty document must fail")
	}
}
