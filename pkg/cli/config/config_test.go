package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/rpad300/godmode-sub015/pkg/cli/config"
	"github.com/rpad300/godmode-sub015/pkg/domain/types"
)

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid configuration",
			content: `
prompt = "Focus on negotiation behavior."

[[person]]
id = "john-silva"
name = "John Silva"
aliases = ["John", "JS"]

[[person]]
id = "maria-santos"
name = "Maria Santos"

[[dimension]]
id = "communication-style"
name = "Communication Style"
description = "How the person communicates in meetings"

[[dimension]]
id = "decision-making"
name = "Decision Making"
`,
			wantErr: false,
		},
		{
			name:    "config file not found",
			content: "", // Won't create the file
			wantErr: true,
		},
		{
			name: "duplicate person ID",
			content: `
[[person]]
id = "john-silva"
name = "John Silva"

[[person]]
id = "john-silva"
name = "Duplicate"
`,
			wantErr: true,
		},
		{
			name: "invalid person ID format (uppercase)",
			content: `
[[person]]
id = "JohnSilva"
name = "John Silva"
`,
			wantErr: true,
		},
		{
			name: "invalid person ID format (underscore)",
			content: `
[[person]]
id = "john_silva"
name = "John Silva"
`,
			wantErr: true,
		},
		{
			name: "missing person name",
			content: `
[[person]]
id = "john-silva"
`,
			wantErr: true,
		},
		{
			name: "duplicate dimension ID",
			content: `
[[dimension]]
id = "communication-style"
name = "Communication Style"

[[dimension]]
id = "communication-style"
name = "Duplicate"
`,
			wantErr: true,
		},
		{
			name: "missing dimension name",
			content: `
[[dimension]]
id = "communication-style"
`,
			wantErr: true,
		},
		{
			name: "malformed TOML",
			content: `
[[person]
id = "john-silva"
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")

			// Only create file if content is not empty
			if tt.content != "" {
				err := os.WriteFile(configPath, []byte(tt.content), 0644)
				gt.NoError(t, err).Required()
			}

			cfg, err := config.LoadAppConfiguration(configPath)

			if tt.wantErr {
				gt.Error(t, err)
				return
			}

			gt.NoError(t, err).Required()
			gt.Value(t, cfg).NotNil()
		})
	}
}

func TestToDomainProfileConfig(t *testing.T) {
	content := `
prompt = "Focus on negotiation behavior."

[[person]]
id = "john-silva"
name = "John Silva"
aliases = ["John", "JS"]

[[dimension]]
id = "communication-style"
name = "Communication Style"
description = "How the person communicates in meetings"
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	gt.NoError(t, os.WriteFile(configPath, []byte(content), 0644)).Required()

	cfg, err := config.LoadAppConfiguration(configPath)
	gt.NoError(t, err).Required()

	profile := cfg.ToDomainProfileConfig()
	gt.Value(t, profile.Prompt).Equal("Focus on negotiation behavior.")
	gt.Array(t, profile.Persons).Length(1).Required()
	gt.Value(t, profile.Persons[0].ID).Equal(types.PersonID("john-silva"))
	gt.Value(t, profile.Persons[0].Name).Equal("John Silva")
	gt.Array(t, profile.Persons[0].Aliases).Length(2)
	gt.Array(t, profile.Dimensions).Length(1).Required()
	gt.Value(t, profile.Dimensions[0].ID).Equal("communication-style")

	person := profile.Person("john-silva")
	gt.Value(t, person).NotNil().Required()
	gt.Value(t, person.Name).Equal("John Silva")

	gt.Value(t, profile.Person("nobody")).Nil()
}
