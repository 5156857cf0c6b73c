// Package wikigraph turns a wikipedia multistream xml dump into a
// directed article link graph.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// You want the pages-articles-multistream dump and its index, e.g.
//    simplewiki-20230820-pages-articles-multistream.xml.bz2
//    simplewiki-20230820-pages-articles-multistream-index.txt.bz2
//
// The index is used to split the dump into ranges of whole bzip2
// streams which are decoded in parallel.  Every content page becomes
// either a line in the adjacency file or a line in the redirect file.
// Redirect chains are then closed so each redirect points straight at
// a real article.
//
// See the programs in the tools subpackages for how this is put
// together.
package wikigraph
