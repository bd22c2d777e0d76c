package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Location
	}{
		{"cast.txt", Location{Scheme: SchemeFile, Key: "cast.txt"}},
		{"/data/cast.txt.gz", Location{Scheme: SchemeFile, Key: "/data/cast.txt.gz"}},
		{"file:///data/cast.txt", Location{Scheme: SchemeFile, Key: "/data/cast.txt"}},
		{"s3://films/2024/cast.zst", Location{Scheme: SchemeS3, Bucket: "films", Key: "2024/cast.zst"}},
		{"S3://films/cast.txt", Location{Scheme: SchemeS3, Bucket: "films", Key: "cast.txt"}},
		{"mem://cast.txt", Location{Scheme: SchemeMem, Key: "cast.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "s3://", "s3://bucket", "s3://bucket/", "mem://"} {
		_, err := ParseLocation(in)
		assert.Error(t, err, in)
	}
}

func TestLocationString(t *testing.T) {
	for _, in := range []string{"cast.txt", "s3://films/cast.zst", "mem://cast.txt"} {
		loc, err := ParseLocation(in)
		require.NoError(t, err)
		assert.Equal(t, in, loc.String())
	}
}
