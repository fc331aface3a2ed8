package config

// LoadTheme returns the persisted theme mode.
func (c *Config) LoadTheme() (string, error) {
	if c.Theme.Mode == "" {
		return ThemeLight, nil
	}
	return c.Theme.Mode, nil
}

// SaveTheme records the theme mode and writes the config file.
func (c *Config) SaveTheme(mode string) error {
	previous := c.Theme.Mode
	c.Theme.Mode = mode
	if err := c.Save(); err != nil {
		c.Theme.Mode = previous
		return err
	}
	return nil
}
