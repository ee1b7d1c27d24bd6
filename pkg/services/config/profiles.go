package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const ProfileFileName = ".webvitalscfg"

// Profile is a named section of ~/.webvitalscfg.
type Profile struct {
	Name               string
	Author             string
	UserAgent          string
	InsecureSkipVerify bool
	S3Bucket           string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// DefaultProfilePath is ~/.webvitalscfg.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ProfileFileName), nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:               section.Name(),
		Author:             section.Key("author").String(),
		UserAgent:          section.Key("user_agent").String(),
		InsecureSkipVerify: section.Key("insecure_skip_verify").MustBool(false),
		S3Bucket:           section.Key("s3_bucket").String(),
	}, nil
}

// Apply overlays the non-empty profile values onto c.
func (p *Profile) Apply(c *Config) {
	if p.Author != "" {
		c.Report.Author = p.Author
	}
	if p.UserAgent != "" {
		c.Fetch.UserAgent = p.UserAgent
	}
	if p.InsecureSkipVerify {
		c.Fetch.InsecureSkipVerify = true
	}
	if p.S3Bucket != "" {
		c.Export.Bucket = p.S3Bucket
	}
}
