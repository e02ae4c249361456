package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# fwrelease configuration
# Priority: FWRELEASE_* env vars > this file > ~/.config/fwrelease/config.yml > defaults

# Input and output files
changelog_file: changes.txt           # Free-text changelog
catalog_file: export.csv              # Site catalog export
output_file: res.csv                  # New rows for the next versions
tables_file: ""                       # Optional YAML overlay for translation tables (see 'fwrelease tables')

# Text format
encoding: utf-8                       # Input encoding: utf-8 | windows-1251 | koi8-r
output_encoding: utf-8                # Output encoding: utf-8 | windows-1251 | koi8-r
delimiter: ";"                        # Catalog field separator
crlf: true                            # End output lines with \r\n like the site importer expects

# Versioning
version_width: 3                      # Dotted versions are zero-padded to this many digits (9 -> 0.0.9)
name_pattern: "Версия %s."            # Display name column format
sort_step: 2                          # Sort key increment for rows built from common changelogs
device_sort_step: 1                   # Sort key increment for rows built from device changelogs
reference_type: lb7                   # Device type whose models are the reference list for 'check'
device_type: lb7                      # Device type standalone device changelogs are matched under

# Console
pause: true                           # Wait for a key before exiting when run in a terminal
log_level: info                       # debug | info | warn | error
log_format: console                   # console | json
watch_debounce: 300ms                 # Quiet period before 'watch' re-runs

# Catalog column names
columns:
  name: IE_NAME
  category: IC_GROUP2
  model: IC_GROUP1
  xml_id: IE_XML_ID
  sort: IE_SORT
  update_date: IP_PROP12
  file_path: IP_PROP23
  notes: IE_PREVIEW_TEXT
  hierarchy: [IC_GROUP0, IC_GROUP1, IC_GROUP2]
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file": "changes.txt",
		"catalog_file":   "export.csv",
		"output_file":    "res.csv",
		"tables_file":    "",

		"encoding":        "utf-8",
		"output_encoding": "utf-8",
		"delimiter":       ";",
		"crlf":            true,

		"version_width":    3,
		"name_pattern":     "Версия %s.",
		"sort_step":        2,
		"device_sort_step": 1,
		"reference_type":   "lb7",
		"device_type":      "lb7",

		// pause keeps the console window open when started by double-click
		"pause":          true,
		"log_level":      "info",
		"log_format":     "console",
		"watch_debounce": (300 * time.Millisecond).String(),

		"columns": map[string]interface{}{
			"name":        "IE_NAME",
			"category":    "IC_GROUP2",
			"model":       "IC_GROUP1",
			"xml_id":      "IE_XML_ID",
			"sort":        "IE_SORT",
			"update_date": "IP_PROP12",
			"file_path":   "IP_PROP23",
			"notes":       "IE_PREVIEW_TEXT",
			"hierarchy":   []string{"IC_GROUP0", "IC_GROUP1", "IC_GROUP2"},
		},
	}
}
