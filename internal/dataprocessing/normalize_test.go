package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string {
	return &s
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want string
	}{
		{
			name: "missing value uses placeholder",
			raw:  nil,
			want: UnknownDoctorName,
		},
		{
			name: "blank value uses placeholder",
			raw:  ptr("   "),
			want: UnknownDoctorName,
		},
		{
			name: "accents are stripped",
			raw:  ptr("José Pérez"),
			want: "Jose Perez",
		},
		{
			name: "tilde n folds to plain n",
			raw:  ptr("Núñez"),
			want: "Nunez",
		},
		{
			name: "upper case is title cased",
			raw:  ptr("MARIA GARCIA"),
			want: "Maria Garcia",
		},
		{
			name: "lower case is title cased",
			raw:  ptr("dr. juan lopez"),
			want: "Dr. Juan Lopez",
		},
		{
			name: "surrounding and inner whitespace collapses",
			raw:  ptr("  ana   torres  "),
			want: "Ana Torres",
		},
		{
			name: "already normalized stays unchanged",
			raw:  ptr("Carlos Mendoza"),
			want: "Carlos Mendoza",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"José Pérez", "MARIA GARCIA", "  dr.  álvaro   ruiz ", "Desconocido"}
	for _, in := range inputs {
		once := NormalizeName(ptr(in))
		twice := NormalizeName(&once)
		assert.Equal(t, once, twice, "normalizing %q twice changed the result", in)
	}
}
