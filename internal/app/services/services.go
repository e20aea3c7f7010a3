package services

// Services defined in this package:
// - AuthService: admin and student login, token issuance
// - IngestService: CSV upload pipeline and single-row edits
// - ResultService: result table queries, deletes and score derivation
