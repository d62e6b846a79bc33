// Package bookfile reads and writes the persisted form of a [model.Book].
//
// The persisted form is YAML. A book is a list of pages, each with an ordered
// list of items tagged by kind:
//
//	language: pt
//	page_count: 2
//	pages:
//	  - number: 1
//	    items:
//	      - kind: heading
//	        text: CAPÍTULO I
//	      - kind: paragraph
//	        sentences:
//	          - text: Era uma vez.
//	            references:
//	              - id: "1"
//	                sentences:
//	                  - text: Uma nota.
//
// References are written under the sentence that cites them. A reference cited
// by more than one sentence is written in full once; later citations carry only
// its id.
//
// Loading is lenient: items with an unknown kind or a missing required field
// are skipped and reported as warnings.
package bookfile
