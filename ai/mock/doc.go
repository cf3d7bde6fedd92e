// Package mock provides test double implementations of the ai interfaces.
//
// The mocks let tests run without external AI services and with fully
// deterministic behavior. The embedder derives a stable unit vector from an
// FNV hash of the input text; the completer echoes prompt sizes unless a
// CompleteFunc is injected.
//
//	provider := mock.NewMockProvider()
//	provider.MockCompleter().CompleteFunc = func(ctx context.Context, sys, user string) (string, error) {
//	    return "", errors.New("backend down")
//	}
package mock
