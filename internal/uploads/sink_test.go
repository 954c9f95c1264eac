package uploads

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"logo.png", "logo.png"},
		{"my photo (1).jpg", "my_photo__1_.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\x\shot.png`, "shot.png"},
		{"..", ""},
		{"", ""},
		{"héllo.png", "h_llo.png"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, SanitizeName(tc.in), "input %q", tc.in)
	}
}

func TestMemorySinkRoundTrip(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	err := sink.Store(ctx, "a.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	err = sink.Store(ctx, "b.svg", strings.NewReader("<svg/>"), 6, "image/svg+xml")
	require.NoError(t, err)

	rc, info, err := sink.Open(ctx, "a.png")
	require.NoError(t, err)
	defer rc.Close()
	require.Equal(t, "image/png", info.ContentType)
	require.EqualValues(t, 9, info.Size)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	files, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "a.png", files[0].Name)
	require.Equal(t, "b.svg", files[1].Name)

	_, _, err = sink.Open(ctx, "missing.png")
	require.ErrorIs(t, err, ErrNotFound)
}
