package compose

import (
	"context"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Round-Trip Verification
// =============================================================================

// VerifyManifest parses emitted manifest text back through the compose
// loader. Pure and in-memory; interpolation is skipped because the
// manifest deliberately carries ${VAR} placeholders resolved by docker
// compose at run time, and environment resolution is skipped because it
// would stat the referenced env_file on disk.
func VerifyManifest(manifest string) error {
	if strings.TrimSpace(manifest) == "" {
		return &VerifyError{Detail: "manifest is empty", Err: ErrInvalidManifest}
	}

	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(manifest), &dict); err != nil {
		return &VerifyError{Detail: err.Error(), Err: ErrInvalidManifest}
	}
	if dict == nil {
		return &VerifyError{Detail: "manifest is not a mapping", Err: ErrInvalidManifest}
	}

	_, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(manifest),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("pipeforge-verify", false)
		opts.SkipValidation = false
		opts.SkipInterpolation = true
		opts.SkipNormalization = true
		opts.SkipExtends = true
		opts.SkipResolveEnvironment = true
	})
	if err != nil {
		return &VerifyError{Detail: err.Error(), Err: ErrInvalidManifest}
	}
	return nil
}
