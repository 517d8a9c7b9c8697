package search

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/internal/sdktest"
	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantQuery string
	}{
		{"defaults", Params{Query: "SW1A"}, "limit=10&offset=0&query=SW1A"},
		{"paged_with_source", Params{Query: "leeds", Limit: params.Ptr(5), Offset: 10, Source: "areas"},
			"limit=5&offset=10&query=leeds&source=areas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				sdktest.JSON(t, w, map[string]any{
					"success": true,
					"result":  []map[string]any{{"id": "1", "source": "areas", "data": map[string]any{"code": "E08000035"}}},
					"meta":    map[string]any{"total": 1, "intent": "place"},
				})
			}))

			out, err := New(reg).Search(context.Background(), tt.params)
			require.NoError(t, err)
			require.Len(t, out.Result, 1)
			assert.Equal(t, "areas", out.Result[0].Source)
			assert.JSONEq(t, `{"code":"E08000035"}`, string(out.Result[0].Data))
			assert.Equal(t, "place", out.Meta.Intent)
		})
	}
}

func TestSearch_QueryRequired(t *testing.T) {
	_, err := New(sdktest.Unreachable(t)).Search(context.Background(), Params{})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.KindRequired, verr.Kind)
}
