package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    Ref
	}{
		{
			name: "no headers",
			want: Ref{Variant: None},
		},
		{
			name:    "permanent only",
			headers: map[string]string{PermanentHeader: "perm-1"},
			want:    Ref{ID: "perm-1", Variant: Permanent},
		},
		{
			name:    "temporary only",
			headers: map[string]string{TemporaryHeader: "temp-1"},
			want:    Ref{ID: "temp-1", Variant: Temporary},
		},
		{
			name:    "both present, permanent wins",
			headers: map[string]string{PermanentHeader: "perm-1", TemporaryHeader: "temp-1"},
			want:    Ref{ID: "perm-1", Variant: Permanent},
		},
		{
			name:    "empty values are absent",
			headers: map[string]string{PermanentHeader: "", TemporaryHeader: ""},
			want:    Ref{Variant: None},
		},
		{
			name:    "contents are not validated",
			headers: map[string]string{TemporaryHeader: "definitely not a uuid"},
			want:    Ref{ID: "definitely not a uuid", Variant: Temporary},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make(http.Header)
			for k, v := range tt.headers {
				h.Set(k, v)
			}

			if diff := cmp.Diff(tt.want, Classify(h)); diff != "" {
				t.Fatalf("ref mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifierMiddleware(t *testing.T) {
	var got Ref
	h := Classifier()(func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		got = FromContext(ctx)
		return nil
	})

	r := httptest.NewRequest(http.MethodPost, "/cart/getcart", nil)
	r.Header.Set(TemporaryHeader, "temp-1")
	if err := h(r.Context(), httptest.NewRecorder(), r); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(Ref{ID: "temp-1", Variant: Temporary}, got); diff != "" {
		t.Fatalf("ref mismatch (-want +got):\n%s", diff)
	}
}

func TestFromContextDefaultsToNone(t *testing.T) {
	if got := FromContext(context.Background()); got.Variant != None || got.ID != "" {
		t.Fatalf("expected a None ref, got %+v", got)
	}
}

func TestVariantString(t *testing.T) {
	for v, want := range map[Variant]string{None: "None", Temporary: "Temporary", Permanent: "Permanent"} {
		if v.String() != want {
			t.Fatalf("expected %s, got %s", want, v.String())
		}
	}
}
