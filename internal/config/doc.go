// Package config loads and watches the gradebook configuration file
// (gradebook.yaml).
//
// Top-level types:
//   - Config{Log, Ingest, Export, Report} — full tree parsed from YAML
//   - LogConfig — level, format (json|pretty)
//   - IngestConfig — name_aliases, score_aliases: the header alias table used
//     to find the name and score columns of an imported file
//   - ExportConfig — dir, format (csv|prom)
//   - ReportConfig — color
//
// Load(path) reads the YAML file, applies defaults, overlays GRADEBOOK_*
// environment variables, then validates enums. LoadOptional treats a missing
// file as "all defaults". LoadEnv reads .env files with godotenv before any of
// that so the overlay can see them.
//
// Watch(ctx, path, log, onChange) hands the file to package watch and calls
// onChange with each newly parsed Config. A reload that fails validation keeps
// the previous config.
package config
