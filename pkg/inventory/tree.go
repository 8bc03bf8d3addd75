package inventory

import "context"

// BuildOUPaths expands the OU tree under rootID into a map of unit ID to its
// "/"-joined path from the root. The walk is iterative with an explicit
// frontier, parent before children, children in listing order. The root's
// path is its own name.
func BuildOUPaths(ctx context.Context, api OrgAPI, rootID, rootName string) (map[string]string, error) {
	type node struct {
		id, name, prefix string
	}

	paths := make(map[string]string)
	frontier := []node{{id: rootID, name: rootName}}
	for len(frontier) > 0 {
		n := frontier[0]
		frontier = frontier[1:]

		path := n.name
		if n.prefix != "" {
			path = n.prefix + "/" + n.name
		}
		paths[n.id] = path

		children, err := api.UnitsForParent(ctx, n.id)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			frontier = append(frontier, node{id: c.ID, name: c.Name, prefix: path})
		}
	}
	return paths, nil
}
