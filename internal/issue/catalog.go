// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"golang.org/x/exp/maps"
)

const (
	repoLink    HttpLink = "https://github.com/exein-io/cross-llvm"
	dockerLink  HttpLink = "https://docs.docker.com/engine/install/"
	podmanLink  HttpLink = "https://podman.io/docs/installation"
	buildxLink  HttpLink = "https://docs.docker.com/build/concepts/overview/#buildx"
	ghcrLink    HttpLink = "https://docs.github.com/en/packages/working-with-a-github-packages-registry/working-with-the-container-registry"
	cueLangLink HttpLink = "https://cuelang.org/docs/"
)

var (
	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# No container engine found!

cross-llvm runs every toolchain inside a container, but neither ` + "`docker`" + ` nor
` + "`podman`" + ` was found on your PATH.

## Things you can try:
- Install Docker or Podman and make sure the binary is on your PATH
- Pick an engine explicitly (it is not checked for existence):
~~~
$ cross-llvm run --container-engine podman -- clang --version
~~~

- Or set it once in your configuration:
~~~cue
container_engine: "podman"
~~~`,
		docLinks: []HttpLink{repoLink},
		extLinks: []HttpLink{dockerLink, podmanLink},
	}

	dockerfileNotFoundIssue = &Issue{
		id: DockerfileNotFoundId,
		mdMsg: `
# No container recipe for this target!

Images are built from ` + "`Dockerfile.{native|cross}-<triple>`" + ` in the recipes directory
(default ` + "`containers/`" + `, set with ` + "`image.recipes_dir`" + `), relative to the directory
you run cross-llvm from. "native" is used when the target CPU architecture matches your
machine, "cross" otherwise.

## Things you can try:
- Run the command from the directory that contains your recipes directory
- Check ` + "`image.recipes_dir`" + ` in the effective configuration:
~~~
$ cross-llvm config show
~~~

- List the targets and the recipe each one needs:
~~~
$ cross-llvm targets
~~~

- Pass ` + "`--target`" + ` explicitly when your host platform has no recipe`,
		docLinks: []HttpLink{repoLink},
	}

	imageBuildFailedIssue = &Issue{
		id: ImageBuildFailedId,
		mdMsg: `
# Container image build failed!

The container engine exited with an error while building the image.

## Things you can try:
- Scroll up: the engine output above shows the failing Dockerfile step
- Make sure buildx is available:
~~~
$ docker buildx version
~~~

- Retry without the layer cache:
~~~
$ cross-llvm build-container-image --no-cache
~~~`,
		docLinks: []HttpLink{repoLink},
		extLinks: []HttpLink{buildxLink},
	}

	imagePushFailedIssue = &Issue{
		id: ImagePushFailedId,
		mdMsg: `
# Container image push failed!

The image was built but the registry rejected the push. Remaining tags were not pushed.

## Things you can try:
- Log in to the registry first:
~~~
$ docker login ghcr.io
~~~

- Check that the tag points at a repository you can write to`,
		docLinks: []HttpLink{repoLink},
		extLinks: []HttpLink{ghcrLink},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file is not valid CUE or does not match the expected schema.

## Things you can try:
- Print the effective configuration:
~~~
$ cross-llvm config show
~~~

- Compare your file with the accepted keys:
~~~cue
container_engine: "docker" | "podman" | ""
image: {
	registry:    string
	recipes_dir: string
}
ui: verbose: bool
~~~`,
		extLinks: []HttpLink{cueLangLink},
	}

	invalidTargetIssue = &Issue{
		id: InvalidTargetId,
		mdMsg: `
# Unsupported target!

Only a fixed set of target triples has toolchain images.

## Things you can try:
- List them:
~~~
$ cross-llvm targets
~~~`,
		docLinks: []HttpLink{repoLink},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The container engine could not be started.

## Things you can try:
- Add yourself to the docker group:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless Podman instead`,
		extLinks: []HttpLink{podmanLink},
	}

	issues = map[Id]*Issue{
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		dockerfileNotFoundIssue.Id():      dockerfileNotFoundIssue,
		imageBuildFailedIssue.Id():        imageBuildFailedIssue,
		imagePushFailedIssue.Id():         imagePushFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		invalidTargetIssue.Id():           invalidTargetIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
	}
)

// Values returns every guide ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

// Get returns the guide for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
