package service

// TokenCorrections exposes tokenCorrections to external tests.
var TokenCorrections = tokenCorrections
