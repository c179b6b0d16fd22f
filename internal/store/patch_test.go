package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchProbe struct {
	Name  Optional[string] `json:"name"`
	Hours Optional[int]    `json:"hours"`
	Owner Optional[*uint]  `json:"owner"`
}

func TestOptionalAbsentField(t *testing.T) {
	var probe patchProbe
	require.NoError(t, json.Unmarshal([]byte(`{}`), &probe))

	assert.False(t, probe.Name.Set())
	assert.False(t, probe.Hours.Set())
	assert.False(t, probe.Owner.Set())
}

func TestOptionalPresentField(t *testing.T) {
	var probe patchProbe
	require.NoError(t, json.Unmarshal([]byte(`{"name": "FAT", "hours": 0}`), &probe))

	name, ok := probe.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "FAT", name)

	// An explicit zero is still present.
	hours, ok := probe.Hours.Get()
	assert.True(t, ok)
	assert.Zero(t, hours)
}

func TestOptionalNullClears(t *testing.T) {
	var probe patchProbe
	require.NoError(t, json.Unmarshal([]byte(`{"name": null, "owner": null}`), &probe))

	name, ok := probe.Name.Get()
	assert.True(t, ok)
	assert.Empty(t, name)

	owner, ok := probe.Owner.Get()
	assert.True(t, ok)
	assert.Nil(t, owner)
}

func TestOptionalRoundTrip(t *testing.T) {
	out, err := json.Marshal(Some("install"))
	require.NoError(t, err)
	assert.JSONEq(t, `"install"`, string(out))
}
