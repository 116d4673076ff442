package contractors

import "github.com/facilops/facilops/pkg/types"

var ContractorsLink = types.NavigationItem{
	Name: "Contractors",
	Href: "/contractors",
}

var ImportsLink = types.NavigationItem{
	Name: "Bulk Import",
	Href: "/contractors/imports",
}

var NavItems = []types.NavigationItem{
	{
		Name: "Facility",
		Href: "/contractors",
		Children: []types.NavigationItem{
			ContractorsLink,
			ImportsLink,
		},
	},
}
