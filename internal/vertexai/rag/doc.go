// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package rag manages Vertex AI RAG Engine corpora.
//
// The [Service] creates corpora backed by the managed vector database, imports
// files staged in Cloud Storage and retrieves ranked contexts for a query:
//
//	svc, err := rag.NewService(ctx, "my-project", "us-central1")
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	contexts, err := svc.RetrieveContexts(ctx, rag.Query{
//		Text:                    "how do I rotate keys?",
//		Corpora:                 []string{corpusName},
//		SimilarityTopK:          10,
//		VectorDistanceThreshold: 0.6,
//	})
package rag
