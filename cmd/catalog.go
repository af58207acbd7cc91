package main

import (
	"fmt"

	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/spf13/cobra"
)

var productFlags struct {
	name     string
	price    string
	category int
	yes      bool
}

var saleFlags struct {
	product  int
	quantity int
	yes      bool
}

var (
	productsCmd = &cobra.Command{
		Use:   "products",
		Short: "List and change products",
	}
	salesCmd = &cobra.Command{
		Use:   "sales",
		Short: "List and change sales",
	}
)

func init() {
	productsCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List products", Args: cobra.NoArgs, RunE: listProducts},
		productFormCmd(&cobra.Command{Use: "create", Short: "Create a product", Args: cobra.NoArgs, RunE: createProduct}),
		productFormCmd(&cobra.Command{Use: "update <id>", Short: "Update a product", Args: cobra.ExactArgs(1), RunE: updateProduct}),
		yesFlag(&cobra.Command{Use: "delete <id>", Short: "Delete a product", Args: cobra.ExactArgs(1), RunE: deleteProduct}, &productFlags.yes),
	)
	salesCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List sales", Args: cobra.NoArgs, RunE: listSales},
		saleFormCmd(&cobra.Command{Use: "create", Short: "Record a sale", Args: cobra.NoArgs, RunE: createSale}),
		saleFormCmd(&cobra.Command{Use: "update <id>", Short: "Update a sale", Args: cobra.ExactArgs(1), RunE: updateSale}),
		yesFlag(&cobra.Command{Use: "delete <id>", Short: "Delete a sale", Args: cobra.ExactArgs(1), RunE: deleteSale}, &saleFlags.yes),
	)
}

func productFormCmd(c *cobra.Command) *cobra.Command {
	c.Flags().StringVar(&productFlags.name, "name", "", "product name")
	c.Flags().StringVar(&productFlags.price, "price", "", "unit price, e.g. 19.90")
	c.Flags().IntVar(&productFlags.category, "category", 0, "category id")
	return c
}

func saleFormCmd(c *cobra.Command) *cobra.Command {
	c.Flags().IntVar(&saleFlags.product, "product", 0, "product id")
	c.Flags().IntVar(&saleFlags.quantity, "quantity", 0, "units sold")
	return c
}

func yesFlag(c *cobra.Command, yes *bool) *cobra.Command {
	c.Flags().BoolVarP(yes, "yes", "y", false, "skip the confirmation prompt")
	return c
}

// products

func listProducts(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := a.Products.Load(cmd.Context()); err != nil {
		return err
	}
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY")
	for _, p := range a.Products.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, a.Format.Money(p.Price), p.CategoryName)
	}
	return w.Flush()
}

func createProduct(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	a.Products.OpenCreate()
	p, err := a.Products.Create(cmd.Context(), entity.ProductNew{
		Name:       productFlags.name,
		Price:      productFlags.price,
		CategoryID: productFlags.category,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created product %d\n", p.ID)
	return nil
}

// updateProduct keeps the current value of every flag that was not given.
func updateProduct(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := a.Products.Load(cmd.Context()); err != nil {
		return err
	}
	current, ok := a.Products.Find(id)
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	n := entity.ProductNew{
		Name:       current.Name,
		Price:      current.Price.StringFixed(2),
		CategoryID: current.CategoryID,
	}
	if cmd.Flags().Changed("name") {
		n.Name = productFlags.name
	}
	if cmd.Flags().Changed("price") {
		n.Price = productFlags.price
	}
	if cmd.Flags().Changed("category") {
		n.CategoryID = productFlags.category
	}

	a.Products.OpenEdit(id)
	if _, err := a.Products.Update(cmd.Context(), id, n); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated product %d\n", id)
	return nil
}

func deleteProduct(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := a.Products.Delete(cmd.Context(), id, confirmer(cmd, productFlags.yes)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted product %d\n", id)
	return nil
}

// sales

func listSales(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := catalog.LoadSalesView(cmd.Context(), a.Sales, a.Products); err != nil {
		return err
	}
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tPRODUCT\tQUANTITY\tTOTAL\tDATE")
	for _, s := range a.Sales.Items() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", s.ID, s.ProductName, s.Quantity, a.Format.Money(s.TotalPrice), a.Format.Date(s.Date))
	}
	return w.Flush()
}

func createSale(cmd *cobra.Command, args []string) error {
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	a.Sales.OpenCreate()
	s, err := a.Sales.Create(cmd.Context(), entity.SaleNew{ProductID: saleFlags.product, Quantity: saleFlags.quantity})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created sale %d\n", s.ID)
	return nil
}

func updateSale(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := a.Sales.Load(cmd.Context()); err != nil {
		return err
	}
	current, ok := a.Sales.Find(id)
	if !ok {
		return fmt.Errorf("sale %d not found", id)
	}
	n := entity.SaleNew{ProductID: current.ProductID, Quantity: current.Quantity}
	if cmd.Flags().Changed("product") {
		n.ProductID = saleFlags.product
	}
	if cmd.Flags().Changed("quantity") {
		n.Quantity = saleFlags.quantity
	}

	a.Sales.OpenEdit(id)
	if _, err := a.Sales.Update(cmd.Context(), id, n); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated sale %d\n", id)
	return nil
}

func deleteSale(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, _, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer printNotifications(cmd, a)

	if err := a.Sales.Delete(cmd.Context(), id, confirmer(cmd, saleFlags.yes)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted sale %d\n", id)
	return nil
}
