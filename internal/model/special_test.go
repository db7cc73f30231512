package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMayhemRoundDecodesBareNumber(t *testing.T) {
	var m MayhemRound
	require.NoError(t, json.Unmarshal([]byte(`7`), &m))

	assert.Equal(t, MayhemRound{Round: 7, Multiplier: 2}, m)
}

func TestMayhemRoundDecodesObject(t *testing.T) {
	var m MayhemRound
	require.NoError(t, json.Unmarshal([]byte(`{"round":7,"multiplier":3}`), &m))

	assert.Equal(t, MayhemRound{Round: 7, Multiplier: 3}, m)
}

func TestMayhemRoundObjectDefaultsMultiplier(t *testing.T) {
	var m MayhemRound
	require.NoError(t, json.Unmarshal([]byte(`{"round":7}`), &m))

	assert.Equal(t, 2, m.Multiplier)
}

func TestMayhemRoundMixedList(t *testing.T) {
	var rounds []MayhemRound
	require.NoError(t, json.Unmarshal([]byte(`[3, {"round":9,"multiplier":2}, 14]`), &rounds))

	assert.Equal(t, []MayhemRound{
		{Round: 3, Multiplier: 2},
		{Round: 9, Multiplier: 2},
		{Round: 14, Multiplier: 2},
	}, rounds)
}

func TestMayhemRoundEncodesAsObject(t *testing.T) {
	data, err := json.Marshal(MayhemRound{Round: 5, Multiplier: 2})
	require.NoError(t, err)

	assert.JSONEq(t, `{"round":5,"multiplier":2}`, string(data))
}
