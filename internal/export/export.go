// Package export saves rendered reports to a local directory or an R2
// bucket.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sink stores exported files. Keys always use forward slashes.
type Sink interface {
	// Save writes r under <subDir>/<name> and returns the key.
	Save(ctx context.Context, subDir, name string, r io.Reader) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Location turns a key into something a user can open.
	Location(ctx context.Context, key string) (string, error)
}

// FileName is a unique name for a report export: <report>-<date>-<uuid>.<ext>.
func FileName(report, ext string, now time.Time) string {
	report = strings.ReplaceAll(strings.ToLower(report), " ", "-")
	return fmt.Sprintf("%s-%s-%s.%s", report, now.Format("20060102"), uuid.NewString(), strings.TrimPrefix(ext, "."))
}

// Report saves data as a new export of report in the "reports" folder and
// returns where it can be found.
func Report(ctx context.Context, sink Sink, report, ext string, data []byte) (string, error) {
	key, err := sink.Save(ctx, "reports", FileName(report, ext, time.Now()), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return sink.Location(ctx, key)
}

func joinKey(subDir, name string) string {
	if subDir == "" {
		return name
	}
	return path.Join(subDir, name)
}
