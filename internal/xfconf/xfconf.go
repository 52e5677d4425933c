// Package xfconf wraps the xfconf-query tool for reading and writing the
// desktop configuration store (xfwm4 and xfce4-panel channels).
package xfconf

import (
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Runner executes a command and returns its combined trimmed stdout. It is
// a seam for tests; the default shells out to xfconf-query.
type Runner func(args ...string) (string, error)

func execRunner(args ...string) (string, error) {
	out, err := exec.Command("xfconf-query", args...).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("xfconf-query %s: %s", strings.Join(args, " "), strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("xfconf-query %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Client talks to the configuration store.
type Client struct {
	run Runner
}

// New returns a Client backed by the xfconf-query binary.
func New() *Client {
	return &Client{run: execRunner}
}

// NewWithRunner returns a Client with a custom runner, for tests.
func NewWithRunner(run Runner) *Client {
	return &Client{run: run}
}

// FrameOpacity reads /general/frame_opacity from the xfwm4 channel.
// The second return is false when the property is unset or unreadable.
func (c *Client) FrameOpacity() (int, bool) {
	out, err := c.run("-c", "xfwm4", "-p", "/general/frame_opacity")
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetFrameOpacity writes /general/frame_opacity on the xfwm4 channel,
// clamping percent to [0, 100].
func (c *Client) SetFrameOpacity(percent int) error {
	percent = clampPercent(percent)
	_, err := c.run("-c", "xfwm4", "-p", "/general/frame_opacity", "-s", strconv.Itoa(percent))
	if err != nil {
		return fmt.Errorf("setting frame opacity: %w", err)
	}
	return nil
}

// ReloadWindowManagerTheme re-sets /general/theme to its current value,
// which forces xfwm4 to reload the theme from disk.
func (c *Client) ReloadWindowManagerTheme() (string, error) {
	theme, err := c.run("-c", "xfwm4", "-p", "/general/theme")
	if err != nil || theme == "" {
		return "", fmt.Errorf("cannot read /general/theme: %w", err)
	}
	theme = strings.TrimSpace(theme)
	if _, err := c.run("-c", "xfwm4", "-p", "/general/theme", "-s", theme); err != nil {
		return "", fmt.Errorf("re-setting theme %q: %w", theme, err)
	}
	return theme, nil
}

var pluginPropRe = regexp.MustCompile(`^/plugins/plugin-(\d+)$`)

// WhiskerPluginIDs enumerates the xfce4-panel plugin slots whose value is
// whiskermenu.
func (c *Client) WhiskerPluginIDs() ([]int, error) {
	props, err := c.run("-c", "xfce4-panel", "-l")
	if err != nil {
		return nil, fmt.Errorf("listing panel properties: %w", err)
	}

	seen := make(map[int]bool)
	var ids []int
	for _, line := range strings.Split(props, "\n") {
		line = strings.TrimSpace(line)
		m := pluginPropRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		val, err := c.run("-c", "xfce4-panel", "-p", line)
		if err != nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(val), "whiskermenu") && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// WhiskerOpacities reads menu-opacity for every whisker plugin slot. Slots
// without a readable value map to -1.
func (c *Client) WhiskerOpacities() (map[int]int, error) {
	ids, err := c.WhiskerPluginIDs()
	if err != nil {
		return nil, err
	}
	vals := make(map[int]int, len(ids))
	for _, id := range ids {
		out, err := c.run("-c", "xfce4-panel", "-p", fmt.Sprintf("/plugins/plugin-%d/menu-opacity", id))
		if err != nil {
			vals[id] = -1
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(out))
		if err != nil {
			vals[id] = -1
			continue
		}
		vals[id] = v
	}
	return vals, nil
}

// SetWhiskerOpacity writes menu-opacity on every whisker plugin slot,
// creating the property when absent. Returns the slot IDs updated.
func (c *Client) SetWhiskerOpacity(percent int) ([]int, error) {
	percent = clampPercent(percent)
	ids, err := c.WhiskerPluginIDs()
	if err != nil {
		return nil, err
	}
	var updated []int
	for _, id := range ids {
		key := fmt.Sprintf("/plugins/plugin-%d/menu-opacity", id)
		_, err := c.run("-c", "xfce4-panel", "-p", key, "--create", "-t", "int", "-s", strconv.Itoa(percent))
		if err != nil {
			return updated, fmt.Errorf("setting %s: %w", key, err)
		}
		updated = append(updated, id)
	}
	return updated, nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
