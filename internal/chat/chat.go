// Package chat runs a document-grounded completion request end to end:
// validate, resolve the attached documents, assemble the prompt, call the
// model once, return the reply.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/docuchat/internal/llm"
	"github.com/jonathan/docuchat/internal/prompt"
	"github.com/jonathan/docuchat/internal/types"
)

// ErrNoMessages rejects requests without a conversation to respond to.
var ErrNoMessages = errors.New("messages array is required")

// maxConcurrentFetches bounds the document fan-out per request.
const maxConcurrentFetches = 4

// DocumentResolver fetches the content behind a document reference.
type DocumentResolver interface {
	Resolve(ctx context.Context, ref types.DocumentReference) (*types.FetchResult, error)
}

// Orchestrator drives one chat request through its stages. It holds no
// per-request state; everything flows through Respond.
type Orchestrator struct {
	resolver DocumentResolver
	client   llm.Client
	log      zerolog.Logger
}

// NewOrchestrator wires the document resolver and model client together.
func NewOrchestrator(resolver DocumentResolver, client llm.Client, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		client:   client,
		log:      log.With().Str("component", "chat").Logger(),
	}
}

// Respond validates the request, resolves its documents, assembles the
// grounded prompt and performs a single completion call. Individual document
// failures do not abort the request; they surface as notes in the prompt.
// Provider errors are returned as-is with no retry.
func (o *Orchestrator) Respond(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, ErrNoMessages
	}
	for _, msg := range req.Messages {
		if !msg.Role.Valid() {
			return nil, fmt.Errorf("invalid message role %q", msg.Role)
		}
	}

	docs := o.resolveDocuments(ctx, req.Documents)
	messages := prompt.Assemble(docs, req.Messages)

	completion, err := o.client.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	o.log.Info().
		Int("documents", len(req.Documents)).
		Int("turns", len(req.Messages)).
		Int("prompt_tokens", completion.Usage.PromptTokens).
		Int("completion_tokens", completion.Usage.CompletionTokens).
		Msg("chat completed")

	return &types.ChatResponse{Message: completion.Message, Usage: completion.Usage}, nil
}

// resolveDocuments fans out the fetches and gathers results in request
// order. A failed fetch fills the Err slot of its entry; it never cancels
// the siblings.
func (o *Orchestrator) resolveDocuments(ctx context.Context, refs []types.DocumentReference) []prompt.ResolvedDocument {
	if len(refs) == 0 {
		return nil
	}

	resolved := make([]prompt.ResolvedDocument, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, ref := range refs {
		g.Go(func() error {
			result, err := o.resolver.Resolve(gctx, ref)
			if err != nil {
				o.log.Warn().Err(err).
					Str("type", string(ref.Type)).
					Str("url", ref.URL).
					Msg("document fetch failed, continuing without it")
				resolved[i] = prompt.ResolvedDocument{Ref: ref, Err: err}
				return nil
			}
			resolved[i] = prompt.ResolvedDocument{Ref: ref, Result: result}
			return nil
		})
	}

	// Workers never return errors, so Wait only synchronizes.
	_ = g.Wait()
	return resolved
}
