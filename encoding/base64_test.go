package encoding

import (
	stdbase64 "encoding/base64"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeBase64_KnownVectors(t *testing.T) {
	tests := []struct {
		plain    string
		expected string
	}{
		{"", ""},
		{"Man", "TWFu"},
		{"Ma", "TWE="},
		{"M", "TQ=="},
		{"pleasure.", "cGxlYXN1cmUu"},
		{"leasure.", "bGVhc3VyZS4="},
		{"easure.", "ZWFzdXJlLg=="},
		{"asure.", "YXN1cmUu"},
		{"sure.", "c3VyZS4="},
		{"\x00\x00\x00", "AAAA"},
		{"\xff\xff\xff", "////"},
		{"\xfb\xff", "+/8="},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, EncodeBase64([]byte(tt.plain)))

			decoded, err := DecodeBase64(tt.expected)
			require.NoError(t, err)
			require.Equal(t, []byte(tt.plain), decoded)
		})
	}
}

func TestEncodeBase64_LengthLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n <= 300; n++ {
		src := make([]byte, n)
		rng.Read(src)

		text := EncodeBase64(src)
		require.Len(t, text, (n+2)/3*4, "input length %d", n)
		require.Equal(t, EncodedLen(n), len(text))
		require.Zero(t, len(text)%4)
		require.LessOrEqual(t, n, DecodedLen(len(text)))
	}
}

func TestEncodeBase64_MatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		src := make([]byte, rng.Intn(1024))
		rng.Read(src)

		require.Equal(t, stdbase64.StdEncoding.EncodeToString(src), EncodeBase64(src))
	}
}

func TestAppendBase64(t *testing.T) {
	dst := []byte("prefix:")
	dst = AppendBase64(dst, []byte("Man"))
	dst = AppendBase64(dst, []byte("M"))

	require.Equal(t, "prefix:TWFuTQ==", string(dst))
}

func TestBase64_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sizes := []int{0, 1, 2, 3, 4, 5, 63, 64, 65, 4096, 1 << 20}

	for _, size := range sizes {
		src := make([]byte, size)
		rng.Read(src)

		decoded, err := DecodeBase64(EncodeBase64(src))
		require.NoError(t, err, "size %d", size)
		require.Equal(t, src, decoded, "size %d", size)
	}
}

func TestDecodeBase64_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
	}{
		{"length one", "T", 1},
		{"length three", "TWF", 3},
		{"length five", "TWFuT", 5},
		{"illegal character", "TW-u", 2},
		{"whitespace", "TWFu\nTWFu", 9},
		{"embedded space", "TW u", 2},
		{"url-safe symbol", "TWF_", 3},
		{"non-ascii", "TWF\xc3", 3},
		{"three pads", "A===", 1},
		{"all pads", "====", 0},
		{"pad then data", "AB=C", 2},
		{"pad in earlier quantum", "AB==CDEF", 2},
		{"single pad in earlier quantum", "ABC=DEFG", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64(tt.text)
			require.Nil(t, decoded, "no partial output on failure")
			require.ErrorIs(t, err, ErrMalformedInput)

			var malformed *MalformedInputError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, tt.offset, malformed.Offset)
			require.NotEmpty(t, malformed.Reason)
		})
	}
}

func TestDecodeBase64_Empty(t *testing.T) {
	decoded, err := DecodeBase64("")
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestMalformedInputError_Message(t *testing.T) {
	_, err := DecodeBase64("TW*u")
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), ErrMalformedInput.Error()))
	require.Contains(t, err.Error(), "offset 2")
	require.Contains(t, err.Error(), `'*'`)
}

func BenchmarkEncodeBase64(b *testing.B) {
	src := make([]byte, 64*1024)
	rand.New(rand.NewSource(3)).Read(src)
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EncodeBase64(src)
	}
}

func BenchmarkDecodeBase64(b *testing.B) {
	src := make([]byte, 64*1024)
	rand.New(rand.NewSource(3)).Read(src)
	text := EncodeBase64(src)
	b.SetBytes(int64(len(text)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecodeBase64(text)
	}
}
