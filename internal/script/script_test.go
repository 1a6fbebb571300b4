package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tboy1337/blinter/internal/source"
)

func TestSuppression_Suppresses(t *testing.T) {
	all := Suppression{All: true}
	assert.True(t, all.Suppresses("E001"))
	assert.True(t, all.Suppresses("ANYTHING"))

	scoped := Suppression{Codes: map[string]bool{"E001": true}}
	assert.True(t, scoped.Suppresses("E001"))
	assert.False(t, scoped.Suppresses("E002"))
}

func TestScript_Line(t *testing.T) {
	sc := &Script{Lines: []Line{
		{Index: 1, Text: "a"},
		{Index: 2, Text: "b"},
	}}

	l, ok := sc.Line(1)
	assert.True(t, ok)
	assert.Equal(t, "a", l.Text)

	_, ok = sc.Line(0)
	assert.False(t, ok)

	_, ok = sc.Line(3)
	assert.False(t, ok)
}

func TestScript_CodeLines(t *testing.T) {
	sc := &Script{Lines: []Line{
		{Index: 1, Kind: KindBlank},
		{Index: 2, Kind: KindCode},
		{Index: 3, Kind: KindComment},
		{Index: 4, Kind: KindCode},
		{Index: 5, Kind: KindLabel},
	}}
	assert.Equal(t, []int{2, 4}, sc.CodeLines())
}

func TestLine_EffectiveSuppression(t *testing.T) {
	same := &Suppression{All: true}
	l := Line{Suppressions: same}
	assert.Same(t, same, l.EffectiveSuppression())

	inherited := &Suppression{Codes: map[string]bool{"E001": true}}
	l2 := Line{InheritedNext: inherited}
	assert.Same(t, inherited, l2.EffectiveSuppression())

	l3 := Line{}
	assert.Nil(t, l3.EffectiveSuppression())
}

func TestLine_CarriesEndingForLineEndingRules(t *testing.T) {
	l := Line{Index: 1, Ending: source.LineEndingLF}
	assert.Equal(t, source.LineEndingLF, l.Ending)
}
