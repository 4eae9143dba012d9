package services

// Revisions is the fixed revision letter sequence of an estimate.
var Revisions = []string{"A", "B", "C", "D", "E", "F", "G"}
