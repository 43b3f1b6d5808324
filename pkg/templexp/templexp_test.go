package templexp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-yexp/pkg/templexp"
)

func TestExpand_ShellParameterExpansion(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
		wantErr  string
	}{
		{name: "basic expansion", template: `prefix-${SET}-suffix`, want: "prefix-set-value-suffix"},
		{name: "missing expands to empty", template: `x=${MISSING}`, want: "x="},
		{name: "fallback with colon treats empty as unset", template: `${EMPTY:-fallback}`, want: "fallback"},
		{name: "fallback without colon keeps empty", template: `x=${EMPTY-fallback}`, want: "x="},
		{name: "alternate with colon", template: `${SET:+alt}`, want: "alt"},
		{name: "alternate with colon on empty", template: `x=${EMPTY:+alt}`, want: "x="},
		{name: "alternate without colon on empty", template: `${EMPTY+alt}`, want: "alt"},
		{name: "nested fallback", template: `${MISSING:-${SET}}`, want: "set-value"},
		{name: "assignment updates vars", template: `${NEW:=value}-${NEW}`, want: "value-value"},
		{name: "literal dollar", template: `$$${SET}`, want: "$set-value"},
		{name: "bare dollar kept", template: `cost $5 and $SET`, want: "cost $5 and $SET"},
		{name: "unterminated kept", template: `${SET`, want: "${SET"},
		{name: "unknown expression kept", template: `${1abc} ${SET%x}`, want: "${1abc} ${SET%x}"},
		{name: "placeholders untouched", template: `k|expand: "%color%-${SET}"`, want: `k|expand: "%color%-set-value"`},
		{name: "required var with message", template: `${MISSING:?missing}`, wantErr: "missing"},
		{name: "required var without message", template: `${EMPTY:?}`, wantErr: "parameter null or not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := templexp.Vars{"SET": "set-value", "EMPTY": ""}
			got, err := templexp.Expand(tt.template, vars)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_AssignmentWritesVars(t *testing.T) {
	vars := templexp.Vars{}

	_, err := templexp.Expand(`${REGION:=eu}`, vars)
	require.NoError(t, err)
	assert.Equal(t, "eu", vars["REGION"])
}

func TestExpand_NilVars(t *testing.T) {
	got, err := templexp.Expand(`${A:-a}${B}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestExpandTemplate_Environment(t *testing.T) {
	t.Setenv("YEXP_TEST_DIR", "/srv/expand")

	got, err := templexp.ExpandTemplate(`dir: "${YEXP_TEST_DIR}" tag: "${YEXP_TEST_TAG:-|expand}"`)
	require.NoError(t, err)
	assert.Equal(t, `dir: "/srv/expand" tag: "|expand"`, got)
}
