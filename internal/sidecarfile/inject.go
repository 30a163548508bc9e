// Package sidecarfile rewrites a project's Dockerfile so that, once built,
// the image also carries the sidecar binary that lets an executor client
// run shell commands and load files inside the resulting container.
package sidecarfile

import (
	"fmt"
	"strings"
)

const sidecarStageName = "swiftide_sidecar"

const neutralizedMarker = "# swiftide: neutralized entrypoint/cmd"

// Rewrite injects a build stage for sidecarImage and wires it into the
// Dockerfile's final stage: any ENTRYPOINT/CMD is neutralized, the sidecar
// binary is copied in, and CMD is replaced with "sleep infinity" so the
// container stays up for the facade to exec into.
//
// Rewrite is idempotent: a Dockerfile already carrying the sidecar stage
// is returned unchanged.
func Rewrite(dockerfileContents, sidecarImage string) (string, error) {
	if strings.Contains(dockerfileContents, "AS "+sidecarStageName) ||
		strings.Contains(dockerfileContents, "as "+sidecarStageName) {
		return dockerfileContents, nil
	}

	lines := strings.Split(dockerfileContents, "\n")

	var out strings.Builder
	fmt.Fprintf(&out, "FROM %s AS %s\n\n", sidecarImage, sidecarStageName)

	alpine := isAlpineBase(lines)

	for _, line := range lines {
		if isEntrypointOrCmd(line) {
			out.WriteString(neutralizedMarker)
			out.WriteString("\n")
			continue
		}
		out.WriteString(line)
		out.WriteString("\n")
	}

	if alpine {
		out.WriteString("RUN apk add --no-cache gcompat libgcc\n")
	}
	out.WriteString(fmt.Sprintf(
		"COPY --from=%s /usr/bin/swiftide-docker-service /usr/bin/swiftide-docker-service\n",
		sidecarStageName,
	))
	out.WriteString(`CMD ["sleep", "infinity"]` + "\n")

	return out.String(), nil
}

func isEntrypointOrCmd(line string) bool {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)
	return strings.HasPrefix(upper, "ENTRYPOINT") || strings.HasPrefix(upper, "CMD")
}

// isAlpineBase scans every FROM line for an alpine base image. Later FROM
// lines in a multi-stage build win, matching which stage actually ships.
func isAlpineBase(lines []string) bool {
	alpine := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToUpper(trimmed), "FROM") {
			continue
		}
		alpine = strings.Contains(strings.ToLower(trimmed), "alpine")
	}
	return alpine
}
