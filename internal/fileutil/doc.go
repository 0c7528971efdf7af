// Package fileutil provides directory tree enumeration for trname.
//
// ScanTree walks a tree and returns its entries bottom-up, so a caller that
// renames entries in order never invalidates a path it has yet to visit:
// renaming an entry only changes the paths of its descendants, and those
// were all listed earlier.
//
// Errors reading a directory are collected in ScanResult.Errors and the scan
// continues with the rest of the tree.
//
// Example:
//
//	result, err := fileutil.ScanTree("/path/to/dir")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range result.Entries {
//	    fmt.Println(e.Path, e.IsDir)
//	}
package fileutil
