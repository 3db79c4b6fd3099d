// Package sboxeval evaluates substitution boxes (S-boxes) against the standard
// cryptanalytic strength metrics: the Difference Distribution Table and differential
// uniformity, the Walsh-Hadamard spectrum (Linear Approximation Table) and maximum
// linear correlation, and the classical bent-function criterion.
//
// The root package holds the shared types. The pipeline itself lives in the
// sub-packages and is composed by the evaluate package.
package sboxeval

// Version of the S-box evaluation engine.
const Version = "1.2.0"

// API summary:
//
// Evaluation:
//   - evaluate.Evaluate(ctx, table, params, opts...) - Run the full pipeline and return a Report
//   - evaluate.Synthesize(inputs) - Assemble a Report from already computed stages
//
// Stages (usable on their own):
//   - normalize.Normalize(table, indexing, parsers...) - Symbols -> flattened S-box
//   - domain.Check(sbox, domainSize, n, m) - Domain and range consistency
//   - ddt.Compute(ctx, sbox, n, m) - Difference Distribution Table
//   - walsh.Compute(ctx, sbox, n, m, alg) - Walsh-Hadamard spectrum / LAT
//   - bent.Classify(n, m, correlation) - Classical bent criterion
//
// Parameters:
//   - core.GetParams(name) - Named presets ("aes", "des", "nibble", "bent4")
//   - core.ValidateParams(params) - Bit width and indexing validation
