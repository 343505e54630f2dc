// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(PermissionDeniedId) {
		t.Fatalf("expected %d issues, got %d", PermissionDeniedId, len(values))
	}
	for i, iss := range values {
		if iss.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, iss.Id(), i+1)
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", iss.Id())
		}
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	iss := Get(ContainerEngineNotFoundId)
	if iss == nil {
		t.Fatal("expected ContainerEngineNotFound issue")
	}
	if !strings.Contains(string(iss.MarkdownMsg()), "podman") {
		t.Errorf("unexpected message: %s", iss.MarkdownMsg())
	}
	if Get(Id(999)) != nil {
		t.Error("unknown id should return nil")
	}
}

func TestIssue_LinksAreCopies(t *testing.T) {
	t.Parallel()

	iss := Get(ImageBuildFailedId)
	links := iss.DocLinks()
	links[0] = "mutated"
	if iss.DocLinks()[0] == "mutated" {
		t.Error("DocLinks must return a copy")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(ContainerEngineNotFoundId).Markdown()
	if !strings.Contains(md, "## See also") {
		t.Errorf("expected See also section, got:\n%s", md)
	}
	if !strings.Contains(md, "<https://podman.io/docs/installation>") {
		t.Errorf("expected external link, got:\n%s", md)
	}
}

func TestIssue_Render(t *testing.T) {
	out, err := Get(DockerfileNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "No container recipe for this target") {
		t.Errorf("rendered output missing title:\n%s", out)
	}
}

func TestDockerfileNotFound_MentionsConfigurableRecipesDir(t *testing.T) {
	t.Parallel()

	md := string(Get(DockerfileNotFoundId).MarkdownMsg())
	for _, want := range []string{"image.recipes_dir", "default `containers/`"} {
		if !strings.Contains(md, want) {
			t.Errorf("guide missing %q:\n%s", want, md)
		}
	}
}
