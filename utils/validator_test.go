package utils

import "testing"

type sampleForm struct {
	Name                 string `validate:"required,nameok"`
	Number               string `validate:"required,phone8"`
	Password             string `validate:"required,pwdmin"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func valid() sampleForm {
	return sampleForm{
		Name:                 "Ana Souza",
		Number:               "81234567",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	}
}

func TestValidateStructAccepts(t *testing.T) {
	f := valid()
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestValidateStructRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*sampleForm)
	}{
		{"missing name", func(f *sampleForm) { f.Name = "" }},
		{"name with symbols", func(f *sampleForm) { f.Name = "a<script>" }},
		{"phone not starting with 8", func(f *sampleForm) { f.Number = "71234567" }},
		{"phone too short", func(f *sampleForm) { f.Number = "8123456" }},
		{"short password", func(f *sampleForm) { f.Password = "abc"; f.PasswordConfirmation = "abc" }},
		{"confirmation mismatch", func(f *sampleForm) { f.PasswordConfirmation = "different1" }},
	}
	for _, tc := range cases {
		f := valid()
		tc.mutate(&f)
		if err := ValidateStruct(&f); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}
