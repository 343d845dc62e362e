// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

// DefaultKey is the storage key of the profile document.
const DefaultKey = "gitgame_data"

var (
	// ErrCorruptProfile is returned when the stored document cannot be decoded.
	ErrCorruptProfile = errors.New("corrupt profile document")

	// ErrNilProfile is returned when saving a nil profile.
	ErrNilProfile = errors.New("profile is nil")
)

// Store persists the single profile document. A missing document is not an
// error: GetProfile returns a fresh default profile instead.
type Store interface {
	GetProfile(ctx context.Context) (*profile.PlayerProfile, error)
	SaveProfile(ctx context.Context, p *profile.PlayerProfile) error
	DeleteProfile(ctx context.Context) error
}

// Pinger is implemented by stores that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// encodeProfile normalizes a copy of p and serializes it.
func encodeProfile(p *profile.PlayerProfile) ([]byte, error) {
	if p == nil {
		return nil, ErrNilProfile
	}
	doc := p.Clone()
	doc.Normalize()

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// decodeProfile overlays the stored document on a default profile so fields
// absent from older saves keep their defaults.
func decodeProfile(data []byte) (*profile.PlayerProfile, error) {
	p := profile.New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProfile, err)
	}
	p.Normalize()
	return p, nil
}
