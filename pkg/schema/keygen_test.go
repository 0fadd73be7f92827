package schema

import "testing"

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Full Name", "full_name"},
		{"  Nomor   HP  ", "nomor_hp"},
		{"E-mail (primary)", "e_mail_primary"},
		{"Alamat Lengkap!", "alamat_lengkap"},
		{"Crédito Ações", "credito_acoes"},
		{"snake_case_already", "snake_case_already"},
		{"UPPER CASE", "upper_case"},
		{"2nd Guardian", "2nd_guardian"},
		{"", ""},
		{"!!! ???", ""},
	}
	for _, tc := range cases {
		if got := DeriveKey(tc.label); got != tc.want {
			t.Fatalf("DeriveKey(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestDeriveKeyIdempotent(t *testing.T) {
	labels := []string{"Full Name", "Crédito", "already_a_key", "Mixed-Case Thing 3"}
	for _, label := range labels {
		once := DeriveKey(label)
		if twice := DeriveKey(once); twice != once {
			t.Fatalf("DeriveKey not idempotent for %q: %q -> %q", label, once, twice)
		}
	}
}

func TestFieldTypeHelpers(t *testing.T) {
	for _, ft := range FieldTypes() {
		if !ft.Valid() {
			t.Fatalf("declared type %q reported invalid", ft)
		}
	}
	if FieldType("color").Valid() {
		t.Fatalf("unknown type reported valid")
	}

	choices := map[FieldType]bool{FieldTypeSelect: true, FieldTypeRadio: true, FieldTypeCheckbox: true}
	for _, ft := range FieldTypes() {
		if ft.IsChoice() != choices[ft] {
			t.Fatalf("IsChoice(%q) = %v", ft, ft.IsChoice())
		}
	}
	if !FieldTypeHeader.IsHeader() || FieldTypeText.IsHeader() {
		t.Fatalf("IsHeader misclassifies")
	}
}
