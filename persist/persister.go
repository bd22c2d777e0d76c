package persist

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/mlwelles/castIndex/index"
	"github.com/mlwelles/castIndex/internal/logging"
	"github.com/mlwelles/castIndex/record"
)

// Persister loads and saves cast files by location, choosing the store from
// the location scheme and the compression from the key extension.
type Persister struct {
	local  Store
	s3     *minio.Client
	stores map[string]Store
	logger *logging.Logger
}

// Option configures a Persister.
type Option func(*Persister)

// WithLocalRoot resolves relative file locations against root.
func WithLocalRoot(root string) Option {
	return func(p *Persister) {
		p.local = NewLocalStore(root)
	}
}

// WithS3 enables s3:// locations through client.
func WithS3(client *minio.Client) Option {
	return func(p *Persister) {
		p.s3 = client
	}
}

// WithStore serves locations with the given scheme from s.
func WithStore(scheme string, s Store) Option {
	return func(p *Persister) {
		p.stores[scheme] = s
	}
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *logging.Logger) Option {
	return func(p *Persister) {
		if l == nil {
			l = logging.NoopLogger()
		}
		p.logger = l
	}
}

// NewPersister returns a Persister serving local files and any configured
// remote stores.
func NewPersister(optFns ...Option) *Persister {
	p := &Persister{
		local:  NewLocalStore(""),
		stores: make(map[string]Store),
		logger: logging.NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(p)
		}
	}
	return p
}

func (p *Persister) store(loc Location) (Store, error) {
	if s, ok := p.stores[loc.Scheme]; ok {
		return s, nil
	}
	switch loc.Scheme {
	case SchemeFile:
		return p.local, nil
	case SchemeS3:
		if p.s3 == nil {
			return nil, fmt.Errorf("%w: %s (no S3 endpoint configured)", ErrUnsupportedScheme, loc.Scheme)
		}
		return NewMinioStore(p.s3, loc.Bucket), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, loc.Scheme)
	}
}

// Load reads the records stored at location.
func (p *Persister) Load(ctx context.Context, location string) ([]record.Record, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	st, err := p.store(loc)
	if err != nil {
		return nil, err
	}

	rc, err := st.Get(ctx, loc.Key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	c := CompressionFor(loc.Key)
	dec, err := c.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("open %s (%s): %w", loc, c, err)
	}
	defer dec.Close()

	records, err := Deserialize(dec)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	p.logger.DebugContext(ctx, "records read",
		"location", loc.String(),
		"compression", c.String(),
		"records", len(records),
	)
	return records, nil
}

// Save writes ix to location and returns the number of bytes stored.
func (p *Persister) Save(ctx context.Context, location string, ix *index.Index) (int, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return 0, err
	}
	st, err := p.store(loc)
	if err != nil {
		return 0, err
	}

	c := CompressionFor(loc.Key)
	var buf bytes.Buffer
	enc, err := c.NewWriter(&buf)
	if err != nil {
		return 0, err
	}
	if err := Serialize(enc, ix); err != nil {
		_ = enc.Close()
		return 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, err
	}

	if err := st.Put(ctx, loc.Key, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("write %s: %w", loc, err)
	}
	return buf.Len(), nil
}
