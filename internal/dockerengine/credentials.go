package dockerengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/docker/cli/cli/config"
	"github.com/docker/docker/api/types/registry"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// credentialHelperOutput is the JSON shape docker-credential-<store> writes
// to stdout in response to a "get" request on stdin.
type credentialHelperOutput struct {
	Username  string
	Secret    string
	ServerURL string
}

// loadRegistryAuths resolves credentials for each host from the local
// docker CLI config: the configured credential helper if one is set,
// otherwise the plaintext/identity-token auth block in config.json.
func loadRegistryAuths(ctx context.Context, registryHosts ...string) (map[string]registry.AuthConfig, error) {
	conf := config.LoadDefaultConfigFile(os.Stderr)

	out := make(map[string]registry.AuthConfig)

	for _, host := range registryHosts {
		if conf.CredentialsStore != "" {
			helperOut, err := loadAuthFromCredentialsStore(ctx, conf.CredentialsStore, host)
			if err != nil {
				console.Debug("loadRegistryAuths(%s): credential helper error: %s", host, err)
				return nil, err
			}
			out[host] = registry.AuthConfig{
				Username:      helperOut.Username,
				Password:      helperOut.Secret,
				ServerAddress: host,
			}
			continue
		}

		if a, ok := conf.AuthConfigs[host]; ok {
			out[host] = registry.AuthConfig{
				Username:      a.Username,
				Password:      a.Password,
				Auth:          a.Auth,
				Email:         a.Email,
				ServerAddress: host,
				IdentityToken: a.IdentityToken,
				RegistryToken: a.RegistryToken,
			}
		}
	}

	return out, nil
}

func loadAuthFromCredentialsStore(ctx context.Context, credsStore, registryHost string) (*credentialHelperOutput, error) {
	var out strings.Builder
	cmd := exec.CommandContext(ctx, "docker-credential-"+credsStore, "get")
	cmd.Env = os.Environ()
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	defer stdin.Close()

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(stdin, registryHost); err != nil {
		return nil, err
	}
	if err := stdin.Close(); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("docker-credential-%s get: %w", credsStore, err)
	}

	var helperOut credentialHelperOutput
	if err := json.Unmarshal([]byte(out.String()), &helperOut); err != nil {
		return nil, err
	}
	return &helperOut, nil
}
