package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByApp(t *testing.T) {
	var keys AuthenticationInfoQueryResult

	err := json.Unmarshal([]byte(`{
		"Items": [
			{"AppName": "other", "AccessToken": "x"},
			{"AppName": "jellyctl", "AccessToken": "k1"},
			{"AppName": "jellyctl", "AccessToken": "k2"}
		],
		"TotalRecordCount": 3
	}`), &keys)
	require.NoError(t, err)
	assert.Equal(t, int64(3), keys.TotalRecordCount)

	key, found := keys.FindByApp("jellyctl")
	require.True(t, found)
	assert.Equal(t, "k1", key.AccessToken)

	_, found = keys.FindByApp("Jellyctl")
	assert.False(t, found)

	var empty AuthenticationInfoQueryResult

	_, found = empty.FindByApp("jellyctl")
	assert.False(t, found)
}
