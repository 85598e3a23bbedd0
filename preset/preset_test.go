package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/iw2rmb/retype/buffer"
	"github.com/iw2rmb/retype/control"
	"github.com/iw2rmb/retype/control/controltest"
	"github.com/iw2rmb/retype/intercept"
)

func at(off int) buffer.Range { return buffer.Caret(off, buffer.UnitRune) }

func TestCaseMapping(t *testing.T) {
	assert.Equal(t, "MIKE", Uppercase(language.Und)("", at(0), "mike"))
	assert.Equal(t, "\u0130", Uppercase(language.Turkish)("", at(0), "i"))
	assert.Equal(t, "stra\u00dfe", Lowercase(language.Und)("", at(0), "STRA\u00dfE"))
	assert.Equal(t, "123", Uppercase(language.Und)("", at(0), "123"))
}

func TestStripDiacritics(t *testing.T) {
	strip := StripDiacritics()
	assert.Equal(t, "cafe", strip("", at(0), "caf\u00e9"))
	assert.Equal(t, "e", strip("", at(0), "e\u0301"))
	assert.Equal(t, "plain", strip("", at(0), "plain"))
}

func TestNarrow(t *testing.T) {
	assert.Equal(t, "AB12", Narrow()("", at(0), "\uff21\uff22\uff11\uff12"))
}

func TestCharacterSets(t *testing.T) {
	assert.Equal(t, "331337", Digits()("", at(0), "l33t 1337"))
	assert.Equal(t, "aba", Allow("ab")("", at(0), "abcxa"))
	assert.Equal(t, "cx", Deny("ab")("", at(0), "abcxa"))
	assert.Equal(t, "a\tb\nc", Sanitize()("", at(0), "a\tb\x00\nc\x1b"))
}

func TestLimit(t *testing.T) {
	limit := Limit(6)

	assert.Equal(t, "xy", limit("abcd", at(4), "xy"))
	assert.Equal(t, "x", limit("abcde", at(5), "xyz"))
	assert.Equal(t, "", limit("abcdef", at(6), "x"))
	// Replacing a span frees its room.
	assert.Equal(t, "xyz", limit("abcdef", buffer.Range{Start: 0, End: 3, Unit: buffer.UnitRune}, "xyz"))
	// Clusters, not runes, are counted.
	assert.Equal(t, "e\u0301", limit("abcde", at(5), "e\u0301f"))
	// A stale range leaves the replacement alone.
	assert.Equal(t, "q", limit("ab", at(9), "q"))
}

func TestLimitThenUppercaseOnAField(t *testing.T) {
	f := controltest.NewField("", buffer.UnitUTF16)
	slot := control.NewSlot("")
	a := intercept.For(control.RoleField).
		Transform(Limit(6)).
		Transform(Uppercase(language.Und)).
		Bind(slot)
	require.Equal(t, 2, a.Render(control.Group{f}))

	for _, r := range "abcdefgh" {
		f.Type(string(r))
	}

	assert.Equal(t, "ABCDEF", f.Buf.Text())
	assert.Equal(t, "ABCDEF", slot.Get())
	assert.Equal(t, buffer.Caret(6, buffer.UnitUTF16), f.Buf.Selection())
}

func TestRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"allow", "deny", "digits", "limit", "lower", "narrow", "sanitize", "strip-diacritics", "upper"}, r.Names())
	assert.NotEmpty(t, r.Usage("limit"))

	up, err := r.Build("upper", Args{})
	require.NoError(t, err)
	assert.Equal(t, "AB", up("", at(0), "ab"))

	lim, err := r.Build("limit", Args{N: 2})
	require.NoError(t, err)
	assert.Equal(t, "b", lim("a", at(1), "bc"))

	_, err = r.Build("nope", Args{})
	assert.ErrorIs(t, err, ErrUnknown)

	_, err = r.Build("limit", Args{})
	assert.ErrorIs(t, err, ErrArgs)

	_, err = r.Build("allow", Args{})
	assert.ErrorIs(t, err, ErrArgs)

	_, err = r.Build("upper", Args{Lang: "not a tag!"})
	assert.ErrorIs(t, err, ErrArgs)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("x", "first", fixed(Digits()))
	r.Register("x", "second", fixed(Sanitize()))
	assert.Equal(t, []string{"x"}, r.Names())
	assert.Equal(t, "second", r.Usage("x"))
}
