// Package jshost exposes the real browser's Web Storage to the typed
// adapters when the program is compiled for js/wasm.
//
//	w, err := jshost.Current()
//	if err != nil {
//		return err
//	}
//	prefs := webstorage.NewLocal(w)
//
// On every other platform the package is empty.
package jshost
