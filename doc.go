// Package bindery is the Composition Root for the bindery toolkit.
//
// It connects the core corpus logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Bindery manages a corpus of "binding" documents: markdown files with YAML
// front matter that prescribe software-engineering practices, derived from
// higher-level tenets and cross-linked through Related Bindings sections.
// It treats the corpus as a transactional database and keeps it honest with
// a built-in linter (front-matter schema, link resolution, structure).
// While the default implementation uses the File System and Git, the core
// is agnostic, allowing for future adapters (e.g., S3, SQLite).
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Transactional Safe**: Atomic operations regardless of the underlying storage.
//   - **Metadata First**: Native front-matter parsing with a persistent index.
//   - **Corpus Linting**: Registered rule families (FM*, RF*, ST*) validate metadata,
//     cross-references, and document structure.
//   - **Reference Graph**: derived_from and Related Bindings edges with backlinks
//     and orphan detection.
//   - **Typed Retrieval**: Generic wrapper (`TypedRepository[T]`) for type-safe access.
//   - **Default Adapter (FS + Git)**: Markdown files with Git versioning out of the box.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := bindery.New("./docs",
//		bindery.WithAutoInit(true),
//		bindery.WithLogger(logger),
//	)
//
//	// Save a binding
//	err := svc.SaveBinding(ctx, "bindings/dry", content, meta)
package bindery
