package core

import (
	"context"

	"github.com/willshacklett/godscore/internal/contract"
	"github.com/willshacklett/godscore/schema"
)

// CollectChange gathers raw change metadata from the repository for the
// auto-scoring path. An empty base ref is auto-resolved (event payload
// base, then the previous commit).
func CollectChange(ctx context.Context, client contract.GitClient, repoPath, baseRef, targetRef string) (*schema.RawChange, error) {
	if targetRef == "" {
		targetRef = "HEAD"
	}
	if baseRef == "" {
		resolved, err := client.ResolveBase(ctx, repoPath)
		if err != nil {
			return nil, err
		}
		baseRef = resolved
	}

	added, removed, files, err := client.DiffNumstat(ctx, repoPath, baseRef, targetRef)
	if err != nil {
		return nil, err
	}
	msg, err := client.HeadMessage(ctx, repoPath, targetRef)
	if err != nil {
		return nil, err
	}

	return &schema.RawChange{
		AddedLines:    added,
		RemovedLines:  removed,
		Files:         files,
		Message:       msg,
		TestsDetected: DetectTestSignals(files),
	}, nil
}
