package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"indent":          2,
		"backup":          true,
		"convert_pattern": "gh-*.md",
		"convert_ext":     ".json",
	}
}
