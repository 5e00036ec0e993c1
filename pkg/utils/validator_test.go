package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type datedStruct struct {
	Release  string `validate:"omitempty,releasedate"`
	Birthday string `validate:"omitempty,birthdate"`
	Login    string `validate:"omitempty,login"`
	Name     string `validate:"omitempty,notblank"`
}

func TestValidateStruct_CustomTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    datedStruct
		field string
		ok    bool
	}{
		{name: "release on the floor date", in: datedStruct{Release: "1895-12-28"}, ok: true},
		{name: "release before the floor date", in: datedStruct{Release: "1895-12-27"}, field: "Release"},
		{name: "release not a date", in: datedStruct{Release: "yesterday"}, field: "Release"},
		{name: "birthday in the past", in: datedStruct{Birthday: "1990-05-20"}, ok: true},
		{name: "birthday in the future", in: datedStruct{Birthday: "2999-01-01"}, field: "Birthday"},
		{name: "login without whitespace", in: datedStruct{Login: "alice_01"}, ok: true},
		{name: "login with a space", in: datedStruct{Login: "al ice"}, field: "Login"},
		{name: "login with a tab", in: datedStruct{Login: "al\tice"}, field: "Login"},
		{name: "name with content", in: datedStruct{Name: "x"}, ok: true},
		{name: "name of only spaces", in: datedStruct{Name: "   "}, field: "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&tt.in)
			if tt.ok {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatValidationErrors(nil))
	assert.Equal(t, "Name: This field cannot be blank",
		FormatValidationErrors(map[string]string{"Name": "This field cannot be blank"}))
}
