// Package config loads the run configuration of the mapping toolkit.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PHENIO_* environment variables (optionally seeded from a .env file), and
// finally command-line flags applied by the caller.
//
// Example configuration:
//
//	stop_phrases: [abnormally, abnormal, aberrant, variant]
//	lexical_predicates: [rdfs:label]
//	pair_strategy: windowed
//	closure: one-hop
//	match: shared-referent
//	custom_prefixes:
//	  - prefix: MGPO
//	    uri_prefix: http://purl.obolibrary.org/obo/MGPO_
//	output:
//	  dir: out
//	sssom:
//	  metadata: true
//	  license: https://creativecommons.org/publicdomain/zero/1.0/
//	database: mappings.db
//	metrics_file: phenio.prom
//	log_level: warn
package config
