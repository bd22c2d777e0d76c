package persist

import (
	"errors"
	"fmt"
	"strings"
)

// Location schemes understood by ParseLocation.
const (
	SchemeFile = "file"
	SchemeS3   = "s3"
	SchemeMem  = "mem"
)

// ErrUnsupportedScheme is returned when no store handles a location's scheme.
var ErrUnsupportedScheme = errors.New("unsupported location scheme")

// Location addresses a cast file. Bucket is only set for s3 locations.
type Location struct {
	Scheme string
	Bucket string
	Key    string
}

// ParseLocation parses "s3://bucket/key", "file:///path", "mem://key" or a
// plain file path.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Location{}, errors.New("empty location")
	}
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return Location{Scheme: SchemeFile, Key: s}, nil
	}
	scheme = strings.ToLower(scheme)
	switch scheme {
	case SchemeS3:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", s)
		}
		return Location{Scheme: scheme, Bucket: bucket, Key: key}, nil
	default:
		if rest == "" {
			return Location{}, fmt.Errorf("invalid location %q: missing path", s)
		}
		return Location{Scheme: scheme, Key: rest}, nil
	}
}

func (l Location) String() string {
	switch l.Scheme {
	case SchemeFile:
		return l.Key
	case SchemeS3:
		return SchemeS3 + "://" + l.Bucket + "/" + l.Key
	default:
		return l.Scheme + "://" + l.Key
	}
}
