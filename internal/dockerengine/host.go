package dockerengine

import (
	"fmt"
	"os"

	dconfig "github.com/docker/cli/cli/config"
	dctxdocker "github.com/docker/cli/cli/context/docker"
	dctxstore "github.com/docker/cli/cli/context/store"
	"github.com/docker/docker/client"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// determineDockerHost resolves the engine socket to dial: DOCKER_HOST,
// then the active (or explicitly named) docker CLI context, then the
// engine client's own compiled-in default.
func determineDockerHost() (string, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return host, nil
	}

	if host, err := dockerHostFromContext(os.Getenv("DOCKER_CONTEXT")); err != nil {
		console.Warn("error finding docker host from context: %v", err)

		// an explicit DOCKER_CONTEXT that can't be resolved is a real error;
		// a missing ambient context just falls through to the default.
		if os.Getenv("DOCKER_CONTEXT") != "" {
			return "", err
		}
	} else if host != "" {
		return host, nil
	}

	return client.DefaultDockerHost, nil
}

func dockerHostFromContext(contextName string) (string, error) {
	if contextName == "" {
		cf, err := dconfig.Load(dconfig.Dir())
		if err != nil {
			return "", err
		}
		contextName = cf.CurrentContext
	}

	typeGetter := func() any { return &dctxdocker.EndpointMeta{} }
	storeConfig := dctxstore.NewConfig(typeGetter, dctxstore.EndpointTypeGetter(dctxdocker.DockerEndpoint, typeGetter))

	store := dctxstore.New(dconfig.ContextStoreDir(), storeConfig)
	meta, err := store.GetMetadata(contextName)
	if err != nil {
		return "", err
	}

	endpoint, ok := meta.Endpoints[dctxdocker.DockerEndpoint]
	if !ok {
		return "", fmt.Errorf("no docker endpoints found for context %s", contextName)
	}

	dockerEPMeta, ok := endpoint.(dctxdocker.EndpointMeta)
	if !ok {
		return "", fmt.Errorf("invalid context config: %v", endpoint)
	}

	if dockerEPMeta.Host == "" {
		return "", fmt.Errorf("no host found for context %s", contextName)
	}

	return dockerEPMeta.Host, nil
}
