package repo

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/logger"
)

// Passthrough forwards an arbitrary argument list to an external tool
// with the working directory bound to the repository root, returning
// captured stdout verbatim. Nothing about the arguments is
// interpreted here.
func (r *Repository) Passthrough(ctx context.Context, tool string, args ...string) (string, error) {
	if tool == "" {
		return "", errs.New(pkgName, errs.CodeInvalidInput, "passthrough",
			"tool name is required", nil)
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = r.root.String()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running external tool", "tool", tool, "args", args)
	if err := cmd.Run(); err != nil {
		return stdout.String(), errs.New(pkgName, errs.CodeInternal, "passthrough",
			stderr.String(), err)
	}
	return stdout.String(), nil
}
