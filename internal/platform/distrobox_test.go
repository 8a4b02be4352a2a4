package platform_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxbuddy/boxbuddy/internal/platform"
	"github.com/boxbuddy/boxbuddy/internal/platform/platformtest"
)

const listHeader = "ID           | NAME                 | STATUS                         | IMAGE                         "

func TestParseList(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		expectedNames []string
		expectedSkips int
	}{
		{
			name: "header and three boxes",
			output: listHeader + "\n" +
				"1a2b3c4d5e6f | fedora  | Up 2 hours         | registry.fedoraproject.org/fedora-toolbox:39\n" +
				"2b3c4d5e6f7a | arch    | Exited (0) 2 days  | quay.io/toolbx/arch-toolbox:latest\n" +
				"3c4d5e6f7a8b | ubuntu  | Created            | quay.io/toolbx/ubuntu-toolbox:22.04\n",
			expectedNames: []string{"fedora", "arch", "ubuntu"},
		},
		{
			name: "without header",
			output: "1a2b | debian | Up 1 minute | docker.io/library/debian:stable\n" +
				"2b3c | alpine | Up 3 minutes | docker.io/library/alpine:latest",
			expectedNames: []string{"debian", "alpine"},
		},
		{
			name: "malformed line in the middle is dropped",
			output: listHeader + "\n" +
				"1a2b | one | Up | img-one\n" +
				"garbage without separators\n" +
				"3c4d | three | Up | img-three\n",
			expectedNames: []string{"one", "three"},
			expectedSkips: 1,
		},
		{
			name: "empty name and duplicate are dropped",
			output: "1a2b |   | Up | img\n" +
				"2b3c | dup | Up | img\n" +
				"3c4d | dup | Exited | img\n",
			expectedNames: []string{"dup"},
			expectedSkips: 2,
		},
		{
			name:          "header only",
			output:        listHeader + "\n",
			expectedNames: nil,
		},
		{
			name:          "empty output",
			output:        "",
			expectedNames: nil,
		},
		{
			name:          "windows line endings and blank lines",
			output:        listHeader + "\r\n\r\n1a2b | box | Up | img\r\n",
			expectedNames: []string{"box"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes, skipped := platform.ParseList(tt.output)

			var names []string
			for _, b := range boxes {
				names = append(names, b.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
			assert.Len(t, skipped, tt.expectedSkips)
		})
	}
}

func TestParseList_Fields(t *testing.T) {
	boxes, skipped := platform.ParseList(listHeader + "\n" +
		"1a2b3c | fedora | Up 2 hours | registry.fedoraproject.org/fedora-toolbox:39\n")
	require.Empty(t, skipped)
	require.Len(t, boxes, 1)

	box := boxes[0]
	assert.Equal(t, "1a2b3c", box.ID)
	assert.Equal(t, "fedora", box.Name)
	assert.Equal(t, "Up 2 hours", box.Status)
	assert.Equal(t, "registry.fedoraproject.org/fedora-toolbox:39", box.Image)
	assert.Equal(t, "fedora", box.Distro)
}

func TestParseList_ParseErrorDetails(t *testing.T) {
	_, skipped := platform.ParseList("1a | ok | Up | img\nbroken | line\n")
	require.Len(t, skipped, 1)

	assert.Equal(t, 2, skipped[0].Line)
	assert.Equal(t, "broken | line", skipped[0].Text)
	assert.Contains(t, skipped[0].Error(), "too few fields")
}

func TestDistrobox_ListBoxes(t *testing.T) {
	runner := platformtest.New()
	runner.OutputFunc = func(name string, args []string) ([]byte, error) {
		return []byte(listHeader + "\n1a | first | Up | img\n2b | second | Exited | img\n"), nil
	}

	d := platform.NewDistrobox("", runner)
	boxes, err := d.ListBoxes(context.Background())
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Equal(t, "first", boxes[0].Name)
	assert.Equal(t, "second", boxes[1].Name)

	calls := runner.CallsOf(platformtest.KindOutput)
	require.Len(t, calls, 1)
	assert.Equal(t, platform.DistroboxCommand, calls[0].Name)
	assert.Equal(t, []string{"list", "--no-color"}, calls[0].Args)
}

func TestDistrobox_ListBoxes_ToolMissing(t *testing.T) {
	runner := platformtest.New()
	runner.Missing[platform.DistroboxCommand] = true

	d := platform.NewDistrobox("", runner)
	assert.False(t, d.IsInstalled())

	_, err := d.ListBoxes(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrToolUnavailable))
}

func TestDistrobox_ListBoxes_NonzeroExit(t *testing.T) {
	runner := platformtest.New()
	runner.OutputFunc = func(name string, args []string) ([]byte, error) {
		return nil, platformtest.ExitError(name, args, 1, "podman: command not found")
	}

	d := platform.NewDistrobox("", runner)
	_, err := d.ListBoxes(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, platform.ErrToolUnavailable))
	assert.Contains(t, err.Error(), "podman: command not found")
}

func TestDistrobox_CustomToolPath(t *testing.T) {
	runner := platformtest.New()
	d := platform.NewDistrobox("/opt/distrobox/bin/distrobox", runner)

	assert.True(t, d.IsInstalled())
	assert.Equal(t, "/opt/distrobox/bin/distrobox", d.Tool())
	require.NoError(t, d.Upgrade(context.Background(), "box1"))

	calls := runner.CallsOf(platformtest.KindRun)
	require.Len(t, calls, 1)
	assert.Equal(t, "/opt/distrobox/bin/distrobox", calls[0].Name)
}

func TestDistrobox_ArgvKeepsNamesLiteral(t *testing.T) {
	d := platform.NewDistrobox("", platformtest.New())
	name := "a;rm -rf ~ && echo $(id)"

	assert.Equal(t, []string{"rm", "--force", name}, d.RemoveArgs(name))
	assert.Equal(t, []string{"upgrade", name}, d.UpgradeArgs(name))
	assert.Equal(t, []string{"distrobox", "enter", name}, d.EnterCommand(name))
	assert.Equal(t, []string{"distrobox", "create", "--name", name}, d.CreateCommand(name, "  "))
	assert.Equal(t,
		[]string{"distrobox", "create", "--name", name, "--image", "docker.io/library/alpine:latest"},
		d.CreateCommand(name, "docker.io/library/alpine:latest"))
}

func TestDistrobox_Remove(t *testing.T) {
	runner := platformtest.New()
	d := platform.NewDistrobox("", runner)

	require.NoError(t, d.Remove(context.Background(), "foo"))

	calls := runner.CallsOf(platformtest.KindRun)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"rm", "--force", "foo"}, calls[0].Args)
}
