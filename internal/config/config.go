// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required"`
	Filename string `yaml:"filename"`
	// Cron schedule for PRAGMA optimize; empty disables it.
	OptimizeCron string `yaml:"optimize_cron"`
}

type SiteConfig struct {
	Title                 string `yaml:"title" validate:"required"`
	Tagline               string `yaml:"tagline"`
	URL                   string `yaml:"url" validate:"omitempty,url"`
	BaseURL               string `yaml:"base_url" validate:"required,startswith=/"`
	Favicon               string `yaml:"favicon"`
	Image                 string `yaml:"image"`
	OrganizationName      string `yaml:"organization_name"`
	ProjectName           string `yaml:"project_name" validate:"required"`
	DeploymentBranch      string `yaml:"deployment_branch"`
	OnBrokenLinks         string `yaml:"on_broken_links" validate:"omitempty,oneof=ignore log warn throw"`
	OnBrokenMarkdownLinks string `yaml:"on_broken_markdown_links" validate:"omitempty,oneof=ignore log warn throw"`
	CreationYear          int    `yaml:"creation_year" validate:"gte=1970"`
	// Filled from REPO_NAME_*/BRANCH_NAME_* in the environment.
	EditURL string `yaml:"-"`
}

type ThemeConfig struct {
	DefaultMode string `yaml:"default_mode" validate:"oneof=dark light"`
	// Zero disables polling of the persisted preference.
	PollInterval time.Duration `yaml:"poll_interval" validate:"gte=0"`
	CookieName   string        `yaml:"cookie_name" validate:"required"`
	// Max theme writes per client IP per minute.
	WritesPerMinute int `yaml:"writes_per_minute" validate:"gte=1"`
}

type NavbarItem struct {
	Type     string `yaml:"type" validate:"omitempty,oneof=doc localeDropdown"`
	DocID    string `yaml:"doc_id" validate:"required_if=Type doc"`
	Href     string `yaml:"href" validate:"omitempty,url"`
	To       string `yaml:"to"`
	Label    string `yaml:"label"`
	Position string `yaml:"position" validate:"oneof=left right"`
}

type NavbarConfig struct {
	Title string `yaml:"title" validate:"required"`
	Logo  struct {
		Alt string `yaml:"alt"`
		Src string `yaml:"src"`
	} `yaml:"logo"`
	Items []NavbarItem `yaml:"items" validate:"dive"`
}

type FooterLink struct {
	Label string `yaml:"label" validate:"required"`
	To    string `yaml:"to" validate:"required_without=Href"`
	Href  string `yaml:"href" validate:"omitempty,url"`
}

type FooterColumn struct {
	Title string       `yaml:"title" validate:"required"`
	Items []FooterLink `yaml:"items" validate:"dive"`
}

type FooterConfig struct {
	Style string         `yaml:"style" validate:"oneof=light dark"`
	Links []FooterColumn `yaml:"links" validate:"dive"`
}

type MetadataTag struct {
	Name    string `yaml:"name" validate:"required"`
	Content string `yaml:"content"`
}

type SearchLocalOptions struct {
	Hashed             bool     `yaml:"hashed"`
	Language           []string `yaml:"language" validate:"min=1"`
	IndexDocs          bool     `yaml:"index_docs"`
	IndexBlog          bool     `yaml:"index_blog"`
	IndexPages         bool     `yaml:"index_pages"`
	DocsRouteBasePath  string   `yaml:"docs_route_base_path"`
	SearchResultLimits int      `yaml:"search_result_limits" validate:"gte=0"`
}

type PWAHeadTag struct {
	TagName string `yaml:"tag_name" validate:"required"`
	Rel     string `yaml:"rel"`
	Href    string `yaml:"href"`
}

type PWAOptions struct {
	Debug                           bool         `yaml:"debug"`
	OfflineModeActivationStrategies []string     `yaml:"offline_mode_activation_strategies" validate:"dive,oneof=appInstalled standalone queryString mobile saveData always"`
	PWAHead                         []PWAHeadTag `yaml:"pwa_head" validate:"dive"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name" validate:"required"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port" validate:"required,gt=0,lt=65536"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Site     SiteConfig    `yaml:"site"`
	Theme    ThemeConfig   `yaml:"theme"`
	Navbar   NavbarConfig  `yaml:"navbar"`
	Footer   FooterConfig  `yaml:"footer"`
	Metadata []MetadataTag `yaml:"metadata" validate:"dive"`

	Plugins struct {
		SearchLocal SearchLocalOptions `yaml:"search_local"`
		PWA         PWAOptions         `yaml:"pwa"`
	} `yaml:"plugins"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the values used for any key the YAML file leaves out.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "nyxx-docs"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = "data/preferences.db"
	cfg.Database.OptimizeCron = "0 3 * * *"
	cfg.Site.BaseURL = "/"
	cfg.Site.OnBrokenLinks = "throw"
	cfg.Site.OnBrokenMarkdownLinks = "warn"
	cfg.Site.CreationYear = 2016
	cfg.Theme.DefaultMode = "dark"
	cfg.Theme.PollInterval = time.Second
	cfg.Theme.CookieName = "theme"
	cfg.Theme.WritesPerMinute = 30
	cfg.Footer.Style = "light"
	cfg.Plugins.SearchLocal.Language = []string{"en"}
	cfg.Plugins.SearchLocal.IndexDocs = true
	cfg.Plugins.SearchLocal.DocsRouteBasePath = "/docs"
	cfg.Plugins.SearchLocal.SearchResultLimits = 8
	return cfg
}

// IsDev reports whether NODE_ENV selects the development site URL and repo.
func IsDev() bool {
	return os.Getenv("NODE_ENV") == "dev"
}

func (c *Config) applyEnv() {
	urlKey, repoKey, branchKey := "PROD_URL", "REPO_NAME_PROD", "REPO_BRANCH_PROD"
	if IsDev() {
		urlKey, repoKey, branchKey = "DEV_URL", "REPO_NAME_DEV", "BRANCH_NAME_DEV"
		c.Plugins.PWA.Debug = true
	}

	if value := strings.TrimSpace(os.Getenv(urlKey)); value != "" {
		c.Site.URL = value
	}
	repo := strings.TrimSpace(os.Getenv(repoKey))
	branch := strings.TrimSpace(os.Getenv(branchKey))
	if repo != "" && branch != "" {
		c.Site.EditURL = fmt.Sprintf("https://github.com/%s/tree/%s/", repo, branch)
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

// Copyright renders the footer notice for the given year.
func (c *Config) Copyright(now time.Time) string {
	return fmt.Sprintf("Copyright © %d - %d %s.", c.Site.CreationYear, now.Year(), c.Site.ProjectName)
}
