// Package settings persists the CLI defaults between runs.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings are the saved user preferences. Zero values are filled by
// Default; unknown fields in the file are ignored.
type Settings struct {
	SelectedName       string `json:"selected_name"`
	BaseHex            string `json:"base_hex"`
	EnableTransparency bool   `json:"enable_transparency"`
	Intensity          int    `json:"intensity"`

	SyncWhisker      bool `json:"sync_whisker"`
	SyncFrameOpacity bool `json:"sync_frame_opacity"`
	RestartWM        bool `json:"restart_wm"`
	RestartPanel     bool `json:"restart_panel"`
	ForceThemeReload bool `json:"force_theme_reload"`

	UpdateDecorations bool `json:"update_decorations"`
	BackupEachApply   bool `json:"backup_each_apply"`
	TintButtons       bool `json:"tint_buttons"`
	DropDuplicates    bool `json:"drop_duplicates"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		SelectedName:       "Sky",
		BaseHex:            "#afcbe6",
		EnableTransparency: true,
		Intensity:          75,
		SyncWhisker:        true,
		SyncFrameOpacity:   true,
		RestartWM:          true,
		RestartPanel:       true,
		ForceThemeReload:   true,
		UpdateDecorations:  true,
		BackupEachApply:    true,
		TintButtons:        true,
		DropDuplicates:     false,
	}
}

// Path returns the settings file location under the user config dir.
func Path() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(cfgDir, "aerotint", "settings.json"), nil
}

// Load reads settings from path. A missing or unreadable file yields the
// defaults without error; only a present-but-corrupt file is reported.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings atomically: a temp file in the same directory is
// renamed over the target so a crash never leaves a half-written file.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
