// Package files locates input workbooks and saves output artifacts.
//
// Discovery resolves configured inputs. A plain path is used as given; a glob
// such as Danh_sach_hoc_vien_tham_gia_*.xlsx selects the export whose
// dd_mm_yyyy name stamp is the latest, falling back to modification time.
//
// Manager writes artifacts into the output directory. WriteAll is all or
// nothing: a failed write removes the files the same call already wrote.
//
// Example usage:
//
//	discovery := files.NewDiscovery(".")
//	path, err := discovery.ResolveInput("Danh_sach_hoc_vien_tham_gia_*.xlsx")
//
//	manager := files.NewManager("charts", logger)
//	written, err := manager.WriteAll(artifacts)
package files
