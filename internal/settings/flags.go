package settings

import "context"

// Flags is the typed view over a Store used by the rest of the service.
type Flags struct {
	store Store
}

func NewFlags(store Store) *Flags {
	return &Flags{store: store}
}

func (f *Flags) HasSeenTour(ctx context.Context) (bool, error) {
	return f.store.Get(ctx, KeySeenTour)
}

func (f *Flags) MarkTourSeen(ctx context.Context) error {
	return f.store.Set(ctx, KeySeenTour, true)
}

func (f *Flags) HasSeenCopyright(ctx context.Context) (bool, error) {
	return f.store.Get(ctx, KeySeenCopyright)
}

func (f *Flags) MarkCopyrightSeen(ctx context.Context) error {
	return f.store.Set(ctx, KeySeenCopyright, true)
}

func (f *Flags) LightPageBlocked(ctx context.Context) (bool, error) {
	return f.store.Get(ctx, KeyLightPageBlocked)
}

func (f *Flags) SetLightPageBlocked(ctx context.Context, blocked bool) error {
	return f.store.Set(ctx, KeyLightPageBlocked, blocked)
}

// All returns every known flag.
func (f *Flags) All(ctx context.Context) (map[Key]bool, error) {
	out := make(map[Key]bool, len(Keys()))
	for _, k := range Keys() {
		v, err := f.store.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Set writes a flag by key, for callers that receive keys as input.
func (f *Flags) Set(ctx context.Context, key Key, value bool) error {
	if _, err := ParseKey(string(key)); err != nil {
		return err
	}
	return f.store.Set(ctx, key, value)
}
