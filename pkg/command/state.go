package command

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/setctl/setctl/pkg/render"
	"github.com/setctl/setctl/pkg/session"
)

// LoadState replays a previously saved command stream from path into
// the registry. A missing file means starting with an empty registry.
func (r *Runner) LoadState(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read state: %w", err)
	}
	sub := *r
	sub.Exist = false
	sub.Quiet = true
	if err := sub.Restore(ctx, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("load state %s: %w", path, err)
	}
	return nil
}

// SaveState persists the registry to path as a restorable command
// stream.
func (r *Runner) SaveState(path string) error {
	var buf bytes.Buffer
	if err := render.List(&buf, session.OutputSave, r.Store, ""); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
