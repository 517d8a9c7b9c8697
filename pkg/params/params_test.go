package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues_OmitsAbsent(t *testing.T) {
	v := New().
		Set("q", "camden").
		String("town", "").
		Int("limit", nil).
		Bool("streetPriority", nil).
		List("types", nil)

	assert.Equal(t, "q=camden", v.Encode())
	assert.Equal(t, 1, v.Len())
}

func TestValues_WritesPresent(t *testing.T) {
	v := New().
		Int("offset", Ptr(0)).
		Bool("includeGeometry", Ptr(false)).
		Float("lat", Ptr(51.5)).
		List("type", []string{"lsoa21", "msoa21"})

	assert.Equal(t, "includeGeometry=false&lat=51.5&offset=0&type=lsoa21%2Cmsoa21", v.Encode())
}

func TestValues_URLValuesIsCopy(t *testing.T) {
	v := New().Set("a", "1")
	out := v.URLValues()
	out.Set("a", "2")
	assert.Equal(t, "a=1", v.Encode())
}

func TestDeref(t *testing.T) {
	assert.Equal(t, 10, Deref[int](nil, 10))
	assert.Equal(t, 3, Deref(Ptr(3), 10))
}
