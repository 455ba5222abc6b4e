package help

const QuickstartYAML = `# llm-doc-digest Quick Start

what_it_does:
  - "Drops boilerplate pages (cover, contents, index, references, legal)"
  - "Runs four extractive summarizers with the same sentence budget"
  - "Scores each summary (ROUGE-L, Flesch reading ease, compression) and keeps the best"
  - "Reports which pages every summary came from"

formats:
  pdf: "one page per PDF page"
  html: "readability main content, one page per h1/h2 section"
  txt: "pages separated by form feeds (pdftotext output)"

methods:
  textrank: "graph centrality over word overlap"
  lexrank: "graph centrality over tf-idf cosine similarity"
  luhn: "clusters of significant words"
  lsa: "latent semantic analysis (SVD)"

fallbacks:
  "fallback: first page raw": "every page was boilerplate"
  "fallback: full filtered text": "every summarizer failed"
  "no sentences post-filter": "kept pages had no sentences"
  "N/A": "no pages at all"

commands:
  digest: |
    llm-doc-digest digest --files "report.pdf,manual.html"

  digest_with_history: |
    llm-doc-digest digest --files report.pdf --db runs.db --out reports/

  size_budget: |
    llm-doc-digest digest --files report.pdf --budget 12000 --include-text

  classify_pages: |
    llm-doc-digest classify --file report.pdf

  list_runs: |
    llm-doc-digest db runs --db runs.db

  run_details: |
    llm-doc-digest db run --db runs.db 3

config_file: |
  # --config digest.yaml (unset keys keep these defaults)
  similarity_weight: 0.40
  readability_weight: 0.30
  compression_weight: 0.30
  target_ratio: 0.60
  min_sentences: 10
  max_sentences: 150
  concurrency: 4
`
