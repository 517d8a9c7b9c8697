package counciltax

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/internal/sdktest"
	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

func TestProperty(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/council-register/property", r.URL.Path)
		assert.Equal(t, "attemptLookup=true&locationId=L1%2CL2", r.URL.RawQuery)
		sdktest.JSON(t, w, map[string]any{
			"success": true,
			"result": []map[string]any{
				{"locationId": "L1", "band": "C", "authority": "Leeds"},
				{"locationId": "L2", "band": "D", "authority": "Leeds"},
			},
		})
	}))

	out, err := New(reg).Property(context.Background(), PropertyParams{
		LocationIDs:   []string{"L1", "L2"},
		AttemptLookup: params.Ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, out.Result, 2)
	assert.Equal(t, "D", out.Result[1].Band)
}

func TestProperty_OmitsAttemptLookup(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "locationId=L1", r.URL.RawQuery)
		sdktest.JSON(t, w, map[string]any{"success": true, "result": []any{}})
	}))

	_, err := New(reg).Property(context.Background(), PropertyParams{LocationIDs: []string{"L1"}})
	require.NoError(t, err)
}

func TestProperty_Validation(t *testing.T) {
	svc := New(sdktest.Unreachable(t))

	_, err := svc.Property(context.Background(), PropertyParams{})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.KindRequired, verr.Kind)

	ids := make([]string, MaxLocationIDs+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("L%d", i)
	}
	_, err = svc.Property(context.Background(), PropertyParams{LocationIDs: ids})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.KindRange, verr.Kind)
}
